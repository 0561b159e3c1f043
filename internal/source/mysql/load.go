package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

// Load reads the whole table into memory, columns in ordinal order.
func (i *Inspector) Load(ctx context.Context) (*dataset.Dataset, error) {
	cols, err := i.FetchSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schema of %s: %w", i.Name(), err)
	}

	dtypes := make([]dataset.DType, len(cols))
	names := make([]string, len(cols))
	for n, col := range cols {
		dtypes[n] = DTypeFor(col.Type)
		names[n] = quoteIdent(col.Name)
	}

	count, err := i.FetchRowCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rows of %s: %w", i.Name(), err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), i.qualifiedTable())
	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", i.Name(), err)
	}
	defer rows.Close()

	values := make([][]dataset.Value, len(cols))
	for n := range values {
		values[n] = make([]dataset.Value, 0, count)
	}
	dest := make([]any, len(cols))
	for rows.Next() {
		for n, t := range dtypes {
			dest[n] = scanTarget(t)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", i.Name(), err)
		}
		for n, t := range dtypes {
			v, err := toValue(t, dest[n])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", cols[n].Name, err)
			}
			values[n] = append(values[n], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	columns := make([]dataset.Column, len(cols))
	for n, col := range cols {
		columns[n] = dataset.Column{
			Name:     col.Name,
			Type:     dtypes[n],
			TypeName: typeName(dtypes[n], col.Type),
			Values:   values[n],
		}
	}
	ds, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("loaded table",
		zap.String("source", i.Name()),
		zap.Int("rows", ds.NumRows()),
		zap.Int("columns", ds.NumColumns()),
	)
	return ds, nil
}

func scanTarget(t dataset.DType) any {
	switch t {
	case dataset.Int8, dataset.Int16, dataset.Int32, dataset.Int64,
		dataset.Uint8, dataset.Uint16, dataset.Uint32, dataset.Bool:
		return new(sql.NullInt64)
	case dataset.Float32, dataset.Float64:
		return new(sql.NullFloat64)
	case dataset.Timestamp, dataset.Date:
		return new(sql.NullTime)
	case dataset.Binary:
		return new([]byte)
	default:
		// uint64 does not fit NullInt64; it is parsed from text.
		return new(sql.NullString)
	}
}

func toValue(t dataset.DType, dest any) (dataset.Value, error) {
	switch d := dest.(type) {
	case *sql.NullInt64:
		if !d.Valid {
			return dataset.Null(), nil
		}
		if t == dataset.Bool {
			return dataset.Boolean(d.Int64 != 0), nil
		}
		if t == dataset.Uint8 || t == dataset.Uint16 || t == dataset.Uint32 {
			return dataset.Uint(uint64(d.Int64)), nil
		}
		return dataset.Int(d.Int64), nil
	case *sql.NullFloat64:
		if !d.Valid {
			return dataset.Null(), nil
		}
		return dataset.Float(d.Float64), nil
	case *sql.NullTime:
		if !d.Valid {
			return dataset.Null(), nil
		}
		return dataset.Time(d.Time), nil
	case *[]byte:
		if *d == nil {
			return dataset.Null(), nil
		}
		return dataset.Bytes(*d), nil
	case *sql.NullString:
		if !d.Valid {
			return dataset.Null(), nil
		}
		if t == dataset.Uint64 {
			u, err := strconv.ParseUint(d.String, 10, 64)
			if err != nil {
				return dataset.Value{}, err
			}
			return dataset.Uint(u), nil
		}
		return dataset.Str(d.String), nil
	default:
		return dataset.Value{}, fmt.Errorf("unsupported scan target %T", dest)
	}
}
