// Package dataset holds the in-memory tabular snapshots the comparison
// core operates on.
package dataset

import "fmt"

type Column struct {
	Name string
	Type DType
	// TypeName is the type as declared by the source, e.g.
	// "decimal128(10, 2)" or "timestamp[ms, tz=UTC]". Loaders set it when
	// Type alone does not capture the declaration.
	TypeName string
	Values   []Value
}

// NewColumn is a shorthand for building a column literal.
func NewColumn(name string, t DType, values ...Value) Column {
	return Column{Name: name, Type: t, Values: values}
}

// DeclaredType returns TypeName, or the dtype name when TypeName is unset.
func (c Column) DeclaredType() string {
	if c.TypeName != "" {
		return c.TypeName
	}
	return c.Type.String()
}

// SameDeclaredType reports whether a and b are declared with the same type.
// Detailed names are compared only when both sides carry one, except for
// the "other" dtype where the detailed name is the whole type.
func SameDeclaredType(a, b Column) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == Other || (a.TypeName != "" && b.TypeName != "") {
		return a.TypeName == b.TypeName
	}
	return true
}

// ColumnsComparable reports whether the values of a and b can be checked
// for equality. Columns of the "other" dtype compare only with an
// identically declared column.
func ColumnsComparable(a, b Column) bool {
	if a.Type == Other || b.Type == Other {
		return a.Type == b.Type && a.TypeName == b.TypeName
	}
	return Comparable(a.Type, b.Type)
}

// Dataset is an ordered set of equally long, uniquely named columns.
// It is never mutated after New returns.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

func New(columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		ds.index[col.Name] = i
		if i == 0 {
			ds.rows = len(col.Values)
			continue
		}
		if len(col.Values) != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), ds.rows)
		}
	}
	return ds, nil
}

// MustNew is New for literals in tests and examples.
func MustNew(columns ...Column) *Dataset {
	ds, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return ds
}

func (d *Dataset) NumRows() int {
	if d == nil {
		return 0
	}
	return d.rows
}

func (d *Dataset) NumColumns() int {
	if d == nil {
		return 0
	}
	return len(d.columns)
}

// Columns returns the columns in declaration order.
func (d *Dataset) Columns() []Column {
	if d == nil {
		return nil
	}
	return d.columns
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, d.NumColumns())
	for _, col := range d.Columns() {
		names = append(names, col.Name)
	}
	return names
}

func (d *Dataset) Column(name string) (Column, bool) {
	if d == nil {
		return Column{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Column(name)
	return ok
}
