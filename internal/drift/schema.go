package drift

import (
	"sort"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

// DiffSchema compares the column sets and declared types of two snapshots.
func DiffSchema(current, previous *dataset.Dataset) types.SchemaDiff {
	diff := types.SchemaDiff{
		Added:       []string{},
		Removed:     []string{},
		TypeChanges: map[string]types.TypeChange{},
	}

	for _, col := range current.Columns() {
		prev, ok := previous.Column(col.Name)
		if !ok {
			diff.Added = append(diff.Added, col.Name)
			continue
		}
		if !dataset.SameDeclaredType(prev, col) {
			diff.TypeChanges[col.Name] = types.TypeChange{
				Previous: prev.DeclaredType(),
				Current:  col.DeclaredType(),
			}
		}
	}
	for _, col := range previous.Columns() {
		if !current.HasColumn(col.Name) {
			diff.Removed = append(diff.Removed, col.Name)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	return diff
}

// commonColumns returns the names present in both snapshots, sorted.
func commonColumns(current, previous *dataset.Dataset) []string {
	var names []string
	for _, col := range current.Columns() {
		if previous.HasColumn(col.Name) {
			names = append(names, col.Name)
		}
	}
	sort.Strings(names)
	return names
}
