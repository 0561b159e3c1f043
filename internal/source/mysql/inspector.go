package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/source"
)

var _ source.Loader = (*Inspector)(nil)

// Inspector reads one table of a MySQL schema.
type Inspector struct {
	db      *sql.DB
	schema  string
	table   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewInspector connects to dsn and verifies the connection. Temporal
// columns are always scanned as time.Time, whatever the DSN says.
func NewInspector(dsn, schema, table string, logger *zap.Logger) (*Inspector, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	if schema == "" {
		schema = cfg.DBName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Inspector{
		db:      db,
		schema:  schema,
		table:   table,
		timeout: 5 * time.Second,
		logger:  logger,
	}, nil
}

func (i *Inspector) Name() string {
	return fmt.Sprintf("mysql:%s.%s", i.schema, i.table)
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

func (i *Inspector) FetchSchema(ctx context.Context) ([]source.ColumnInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	rows, err := i.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, i.schema, i.table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []source.ColumnInfo
	for rows.Next() {
		var name, columnType, nullable string
		if err := rows.Scan(&name, &columnType, &nullable); err != nil {
			return nil, err
		}
		cols = append(cols, source.ColumnInfo{
			Name:     name,
			Type:     columnType,
			Nullable: nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", i.schema, i.table)
	}
	return cols, nil
}

func (i *Inspector) FetchRowCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", i.qualifiedTable())
	err := i.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i *Inspector) qualifiedTable() string {
	return quoteIdent(i.schema) + "." + quoteIdent(i.table)
}
