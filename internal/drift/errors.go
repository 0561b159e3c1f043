package drift

import (
	"fmt"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

// ConfigurationError reports an unusable primary key. It is returned before
// any diff work starts.
type ConfigurationError struct {
	Column  string
	Dataset string // "current", "previous" or "both"
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("primary key %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("primary key %q: %s in %s dataset", e.Column, e.Reason, e.Dataset)
}

// IncomparableTypeError marks a common column whose two declared types
// cannot be checked for equality. The column is skipped for value
// comparison only.
type IncomparableTypeError struct {
	Column   string
	Previous string
	Current  string
}

func (e *IncomparableTypeError) Error() string {
	return fmt.Sprintf("column %q: cannot compare %s values with %s values", e.Column, e.Previous, e.Current)
}

func checkComparable(previous, current dataset.Column) error {
	if dataset.ColumnsComparable(previous, current) {
		return nil
	}
	return &IncomparableTypeError{
		Column:   current.Name,
		Previous: previous.DeclaredType(),
		Current:  current.DeclaredType(),
	}
}

// validateKeys checks that every key column exists on both sides and holds
// comparable types.
func validateKeys(current, previous *dataset.Dataset, keys []string) error {
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			return &ConfigurationError{Column: key, Reason: "listed more than once"}
		}
		seen[key] = true

		cur, inCurrent := current.Column(key)
		prev, inPrevious := previous.Column(key)
		switch {
		case !inCurrent && !inPrevious:
			return &ConfigurationError{Column: key, Dataset: "both", Reason: "column not found"}
		case !inCurrent:
			return &ConfigurationError{Column: key, Dataset: "current", Reason: "column not found"}
		case !inPrevious:
			return &ConfigurationError{Column: key, Dataset: "previous", Reason: "column not found"}
		}
		if err := checkComparable(prev, cur); err != nil {
			return &ConfigurationError{Column: key, Reason: err.Error()}
		}
	}
	return nil
}
