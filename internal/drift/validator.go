package drift

import (
	"fmt"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

type Issue struct {
	Column   string
	Severity string
	Message  string
}

type Report struct {
	Issues []Issue
}

// Blocking reports whether any issue prevents the comparison from running.
func (r *Report) Blocking() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Validate inspects a snapshot pair before comparison and reports conditions
// that weaken the diff (or, for BLOCK issues, prevent it).
func Validate(current, previous *dataset.Dataset, keys []string) *Report {
	report := &Report{}

	if len(keys) == 0 {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarn,
			Message:  "No primary key configured (rows aligned by position)",
		})
	} else if err := validateKeys(current, previous, keys); err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityBlock,
			Message:  err.Error(),
		})
		return report
	} else {
		for _, side := range []struct {
			name string
			ds   *dataset.Dataset
		}{{"previous", previous}, {"current", current}} {
			if !buildKeyIndex(side.ds, keys).unique {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityWarn,
					Message:  fmt.Sprintf("Primary key not unique in %s dataset (merge alignment)", side.name),
				})
			}
			for _, key := range keys {
				if nulls := countNulls(side.ds, key); nulls > 0 {
					report.Issues = append(report.Issues, Issue{
						Column:   key,
						Severity: SeverityWarn,
						Message:  fmt.Sprintf("Primary key column has %d null value(s) in %s dataset", nulls, side.name),
					})
				}
			}
		}
	}

	for _, name := range commonColumns(current, previous) {
		cur, _ := current.Column(name)
		prev, _ := previous.Column(name)
		if err := checkComparable(prev, cur); err != nil {
			report.Issues = append(report.Issues, Issue{
				Column:   name,
				Severity: SeverityWarn,
				Message:  err.Error(),
			})
		}
	}
	return report
}

func countNulls(ds *dataset.Dataset, name string) int {
	col, ok := ds.Column(name)
	if !ok {
		return 0
	}
	n := 0
	for _, v := range col.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}
