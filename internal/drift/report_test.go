package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

func TestFormatReport_NoRegression(t *testing.T) {
	res := &types.ComparisonResult{
		Schema: types.SchemaDiff{
			Added:       []string{"status"},
			Removed:     []string{},
			TypeChanges: map[string]types.TypeChange{},
		},
		Values: types.ValueDiff{
			PreviousRowCount: 2,
			CurrentRowCount:  2,
			ChangedColumns: map[string]types.ColumnChange{
				"val": {ChangedRowCount: 1, ChangedRowPercentage: 50},
			},
		},
	}

	want := `============================================================
PARQUET FILE COMPARISON REPORT
============================================================

SCHEMA CHANGES:
  Added columns: ['status']
  Removed columns: None
  Type changes: None

VALUE CHANGES:
  Previous rows: 2
  Current rows: 2
  Row difference: 0

  Columns with value changes:
    - val: 1 rows (50.0%)

NO REGRESSION DETECTED
  Potential regression: false
============================================================
`
	assert.Equal(t, want, FormatReport(res))
}

func TestFormatReport_Regression(t *testing.T) {
	res := &types.ComparisonResult{
		Schema: types.SchemaDiff{
			Added:   []string{},
			Removed: []string{"a", "b"},
			TypeChanges: map[string]types.TypeChange{
				"qty": {Previous: "int64", Current: "string"},
			},
		},
		Values: types.ValueDiff{
			PreviousRowCount: 5,
			CurrentRowCount:  3,
			RowCountDelta:    -2,
			ChangedColumns:   map[string]types.ColumnChange{},
		},
		Regression: types.RegressionVerdict{
			IsRegression: true,
			Reasons:      []string{"column removed: a", "column removed: b", "type changed for column qty: int64 → string"},
		},
	}

	want := `============================================================
PARQUET FILE COMPARISON REPORT
============================================================

SCHEMA CHANGES:
  Added columns: None
  Removed columns: ['a', 'b']
  Type changes: {'qty': {'previous': 'int64', 'current': 'string'}}

VALUE CHANGES:
  Previous rows: 5
  Current rows: 3
  Row difference: -2

REGRESSION ALERT: column removed: a; column removed: b; type changed for column qty: int64 → string
  Potential regression: true
============================================================
`
	assert.Equal(t, want, FormatReport(res))
}

func TestFormatReport_SortsChangedColumns(t *testing.T) {
	res := &types.ComparisonResult{
		Values: types.ValueDiff{
			ChangedColumns: map[string]types.ColumnChange{
				"b": {ChangedRowCount: 2, ChangedRowPercentage: 12.5},
				"a": {ChangedRowCount: 1, ChangedRowPercentage: 33.33},
			},
		},
	}
	out := FormatReport(res)
	assert.Contains(t, out, "    - a: 1 rows (33.33%)\n    - b: 2 rows (12.5%)\n")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'plain'", quote("plain"))
	assert.Equal(t, `"it's"`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}
