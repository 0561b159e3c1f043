package types

import "time"

type TypeChange struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

type SchemaDiff struct {
	Added       []string              `json:"added_columns"`
	Removed     []string              `json:"removed_columns"`
	TypeChanges map[string]TypeChange `json:"type_changes"`
}

type ColumnChange struct {
	ChangedRowCount      int     `json:"changed_row_count"`
	ChangedRowPercentage float64 `json:"changed_row_percentage"`
}

// Alignment strategies reported in ValueDiff.Strategy.
const (
	StrategyIndex      = "index"
	StrategyMerge      = "merge"
	StrategyPositional = "positional"
)

type ValueDiff struct {
	PreviousRowCount      int                     `json:"previous_row_count"`
	CurrentRowCount       int                     `json:"current_row_count"`
	RowCountDelta         int                     `json:"row_count_delta"`
	ChangedColumns        map[string]ColumnChange `json:"changed_columns"`
	Strategy              string                  `json:"strategy"`
	MatchedRows           int                     `json:"matched_rows"`
	UnmatchedPreviousRows int                     `json:"unmatched_previous_rows"`
	UnmatchedCurrentRows  int                     `json:"unmatched_current_rows"`
	IncomparableColumns   []string                `json:"incomparable_columns"`
}

type Finding struct {
	Kind     string `json:"kind"`
	Column   string `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type RegressionVerdict struct {
	IsRegression bool      `json:"is_regression"`
	Reasons      []string  `json:"reasons"`
	Findings     []Finding `json:"findings"`
}

type Summary struct {
	TotalColumnsCurrent      int     `json:"total_columns_current"`
	TotalColumnsPrevious     int     `json:"total_columns_previous"`
	TotalSchemaIssues        int     `json:"total_schema_issues"`
	ColumnsWithValueChanges  int     `json:"columns_with_value_changes"`
	RowCountChangePercentage float64 `json:"row_count_change_percentage"`
}

// ComparisonResult is the serialized form of one snapshot comparison.
// Key names are stable; downstream tooling reads them directly.
type ComparisonResult struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	PrimaryKeys []string          `json:"primary_keys"`
	Schema      SchemaDiff        `json:"schema_changes"`
	Values      ValueDiff         `json:"value_changes"`
	Regression  RegressionVerdict `json:"regression"`
	Summary     Summary           `json:"summary"`
}

// CheckResult is the one-line outcome of a named comparison in a check run.
type CheckResult struct {
	Name             string
	SchemaDrift      bool
	RowCountDeltaPct float64
	ChangedColumns   int
	Regression       bool
	Status           string
}

const (
	StatusOK         = "OK"
	StatusRegression = "REGRESSION"
	StatusError      = "ERROR"
)

// NewCheckResult condenses r into a CheckResult.
func NewCheckResult(name string, r *ComparisonResult) CheckResult {
	res := CheckResult{
		Name:             name,
		SchemaDrift:      len(r.Schema.Added) > 0 || len(r.Schema.Removed) > 0 || len(r.Schema.TypeChanges) > 0,
		RowCountDeltaPct: r.Summary.RowCountChangePercentage,
		ChangedColumns:   len(r.Values.ChangedColumns),
		Regression:       r.Regression.IsRegression,
		Status:           StatusOK,
	}
	if res.Regression {
		res.Status = StatusRegression
	}
	return res
}
