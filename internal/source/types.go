package source

import (
	"context"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

// ColumnInfo is a column as declared by the backing store.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

// Loader materializes one snapshot of a dataset.
type Loader interface {
	Name() string
	Load(ctx context.Context) (*dataset.Dataset, error)
}
