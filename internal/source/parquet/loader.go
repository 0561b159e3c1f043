// Package parquet loads Parquet files into datasets through Arrow.
package parquet

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/internal/source"
)

var _ source.Loader = (*Loader)(nil)

type Loader struct {
	path   string
	mem    memory.Allocator
	logger *zap.Logger
}

func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, mem: memory.NewGoAllocator(), logger: logger}
}

func (l *Loader) Name() string {
	return "parquet:" + l.path
}

func (l *Loader) Load(ctx context.Context) (*dataset.Dataset, error) {
	rdr, err := file.OpenParquetFile(l.path, false)
	if err != nil {
		return nil, fmt.Errorf("open parquet file %s: %w", l.path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: 64 * 1024}, l.mem)
	if err != nil {
		return nil, fmt.Errorf("create arrow reader for %s: %w", l.path, err)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	defer tbl.Release()

	ds, err := FromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", l.path, err)
	}
	l.logger.Debug("loaded parquet file",
		zap.String("path", l.path),
		zap.Int("rows", ds.NumRows()),
		zap.Int("columns", ds.NumColumns()),
		zap.Int("row_groups", rdr.NumRowGroups()),
	)
	return ds, nil
}

// FromTable copies an Arrow table into a dataset. The result does not
// reference Arrow memory, so tbl may be released afterwards.
func FromTable(tbl arrow.Table) (*dataset.Dataset, error) {
	columns := make([]dataset.Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		values := make([]dataset.Value, 0, tbl.NumRows())
		for _, chunk := range col.Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				values = append(values, cellValue(chunk, j))
			}
		}
		dt := DTypeFor(col.DataType())
		columns = append(columns, dataset.Column{
			Name:     col.Name(),
			Type:     dt,
			TypeName: typeName(dt, col.DataType()),
			Values:   values,
		})
	}
	return dataset.New(columns...)
}

// typeName keeps the full Arrow type where the dtype loses detail: nested
// and decimal types, timestamp unit and zone, fixed binary width.
func typeName(t dataset.DType, dt arrow.DataType) string {
	switch {
	case t == dataset.Other, t == dataset.Timestamp, dt.ID() == arrow.FIXED_SIZE_BINARY:
		return dt.String()
	default:
		return ""
	}
}

func DTypeFor(dt arrow.DataType) dataset.DType {
	switch dt.ID() {
	case arrow.INT8:
		return dataset.Int8
	case arrow.INT16:
		return dataset.Int16
	case arrow.INT32:
		return dataset.Int32
	case arrow.INT64:
		return dataset.Int64
	case arrow.UINT8:
		return dataset.Uint8
	case arrow.UINT16:
		return dataset.Uint16
	case arrow.UINT32:
		return dataset.Uint32
	case arrow.UINT64:
		return dataset.Uint64
	case arrow.FLOAT32:
		return dataset.Float32
	case arrow.FLOAT64:
		return dataset.Float64
	case arrow.STRING, arrow.LARGE_STRING:
		return dataset.String
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return dataset.Binary
	case arrow.BOOL:
		return dataset.Bool
	case arrow.TIMESTAMP:
		return dataset.Timestamp
	case arrow.DATE32, arrow.DATE64:
		return dataset.Date
	default:
		return dataset.Other
	}
}

func cellValue(arr arrow.Array, i int) dataset.Value {
	if arr.IsNull(i) {
		return dataset.Null()
	}
	switch a := arr.(type) {
	case *array.Int8:
		return dataset.Int(int64(a.Value(i)))
	case *array.Int16:
		return dataset.Int(int64(a.Value(i)))
	case *array.Int32:
		return dataset.Int(int64(a.Value(i)))
	case *array.Int64:
		return dataset.Int(a.Value(i))
	case *array.Uint8:
		return dataset.Uint(uint64(a.Value(i)))
	case *array.Uint16:
		return dataset.Uint(uint64(a.Value(i)))
	case *array.Uint32:
		return dataset.Uint(uint64(a.Value(i)))
	case *array.Uint64:
		return dataset.Uint(a.Value(i))
	case *array.Float32:
		return dataset.Float(float64(a.Value(i)))
	case *array.Float64:
		return dataset.Float(a.Value(i))
	case *array.Boolean:
		return dataset.Boolean(a.Value(i))
	case *array.String:
		return dataset.Str(strings.Clone(a.Value(i)))
	case *array.LargeString:
		return dataset.Str(strings.Clone(a.Value(i)))
	case *array.Binary:
		return dataset.Bytes(append([]byte(nil), a.Value(i)...))
	case *array.LargeBinary:
		return dataset.Bytes(append([]byte(nil), a.Value(i)...))
	case *array.FixedSizeBinary:
		return dataset.Bytes(append([]byte(nil), a.Value(i)...))
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return dataset.Time(a.Value(i).ToTime(unit))
	case *array.Date32:
		return dataset.Time(a.Value(i).ToTime())
	case *array.Date64:
		return dataset.Time(a.Value(i).ToTime())
	default:
		return dataset.Str(arr.ValueStr(i))
	}
}
