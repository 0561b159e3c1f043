package drift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

const (
	reportRule  = "============================================================"
	reportTitle = "PARQUET FILE COMPARISON REPORT"
	noneLabel   = "None"
)

// FormatReport renders r in the fixed text layout consumed by existing
// tooling. It reads r and never alters it.
func FormatReport(r *types.ComparisonResult) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(reportRule)
	line(reportTitle)
	line(reportRule)
	line("")
	line("SCHEMA CHANGES:")
	line("  Added columns: %s", formatNames(r.Schema.Added))
	line("  Removed columns: %s", formatNames(r.Schema.Removed))
	line("  Type changes: %s", formatTypeChanges(r.Schema.TypeChanges))
	line("")
	line("VALUE CHANGES:")
	line("  Previous rows: %d", r.Values.PreviousRowCount)
	line("  Current rows: %d", r.Values.CurrentRowCount)
	line("  Row difference: %d", r.Values.RowCountDelta)

	if len(r.Values.ChangedColumns) > 0 {
		line("")
		line("  Columns with value changes:")
		for _, name := range sortedKeys(r.Values.ChangedColumns) {
			cc := r.Values.ChangedColumns[name]
			line("    - %s: %d rows (%s%%)", name, cc.ChangedRowCount, formatPct(cc.ChangedRowPercentage))
		}
	}

	line("")
	if r.Regression.IsRegression {
		line("REGRESSION ALERT: %s", strings.Join(r.Regression.Reasons, "; "))
	} else {
		line("NO REGRESSION DETECTED")
	}
	line("  Potential regression: %t", r.Regression.IsRegression)
	line(reportRule)
	return b.String()
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return noneLabel
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func formatTypeChanges(changes map[string]types.TypeChange) string {
	if len(changes) == 0 {
		return noneLabel
	}
	entries := make([]string, 0, len(changes))
	for _, name := range sortedKeys(changes) {
		tc := changes[name]
		entries = append(entries, fmt.Sprintf("%s: {'previous': %s, 'current': %s}", quote(name), quote(tc.Previous), quote(tc.Current)))
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

// quote renders s the way the legacy report printed string literals:
// single quotes unless s itself holds one.
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// formatPct always keeps one decimal place: 50 prints as 50.0.
func formatPct(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
