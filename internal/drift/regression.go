package drift

import (
	"sort"
	"strconv"

	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

// Policy holds the opt-in regression thresholds. The zero Policy flags only
// removed columns and type changes.
type Policy struct {
	// RowDecreaseThresholdPct > 0 flags a row count drop larger than this
	// percentage of the previous row count.
	RowDecreaseThresholdPct float64 `yaml:"rowDecreaseThresholdPct"`
	// ChangedRowThresholdPct > 0 flags any column whose changed row
	// percentage exceeds it.
	ChangedRowThresholdPct float64 `yaml:"changedRowThresholdPct"`
}

// Classify derives the regression verdict from a schema and value diff.
// Every rule is evaluated; all BLOCK findings become reasons.
func Classify(schema types.SchemaDiff, values types.ValueDiff, policy Policy) types.RegressionVerdict {
	verdict := types.RegressionVerdict{Reasons: []string{}, Findings: []types.Finding{}}
	add := func(kind, column, severity, message string) {
		verdict.Findings = append(verdict.Findings, types.Finding{
			Kind:     kind,
			Column:   column,
			Severity: severity,
			Message:  message,
		})
		if severity == SeverityBlock {
			verdict.IsRegression = true
			verdict.Reasons = append(verdict.Reasons, message)
		}
	}

	for _, name := range schema.Removed {
		add(KindColumnRemoved, name, SeverityForChange(KindColumnRemoved), MessageForChange(KindColumnRemoved, name, "", ""))
	}
	for _, name := range sortedKeys(schema.TypeChanges) {
		tc := schema.TypeChanges[name]
		add(KindTypeChanged, name, SeverityForChange(KindTypeChanged), MessageForChange(KindTypeChanged, name, tc.Previous, tc.Current))
	}

	from, to := strconv.Itoa(values.PreviousRowCount), strconv.Itoa(values.CurrentRowCount)
	switch {
	case values.RowCountDelta < 0:
		severity := SeverityForChange(KindRowCountDecreased)
		drop := percentage(-values.RowCountDelta, values.PreviousRowCount)
		if policy.RowDecreaseThresholdPct > 0 && drop > policy.RowDecreaseThresholdPct {
			severity = SeverityBlock
		}
		add(KindRowCountDecreased, "", severity, MessageForChange(KindRowCountDecreased, "", from, to))
	case values.RowCountDelta > 0:
		add(KindRowCountIncreased, "", SeverityForChange(KindRowCountIncreased), MessageForChange(KindRowCountIncreased, "", from, to))
	}

	for _, name := range sortedKeys(values.ChangedColumns) {
		pct := values.ChangedColumns[name].ChangedRowPercentage
		severity := SeverityForChange(KindValuesChanged)
		if policy.ChangedRowThresholdPct > 0 && pct > policy.ChangedRowThresholdPct {
			severity = SeverityBlock
		}
		add(KindValuesChanged, name, severity, MessageForChange(KindValuesChanged, name, "", formatPct(pct)+"%"))
	}

	for _, name := range schema.Added {
		add(KindColumnAdded, name, SeverityForChange(KindColumnAdded), MessageForChange(KindColumnAdded, name, "", ""))
	}
	return verdict
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
