package drift

import "fmt"

// Centralized severity and message helpers for snapshot changes.
// Rules:
// - BLOCK for changes that break consumers (these make a regression)
// - WARN for risky changes that are not a regression on their own
// - INFO for everything else

const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityBlock = "BLOCK"
)

// Change kinds reported as findings.
const (
	KindColumnAdded       = "column_added"
	KindColumnRemoved     = "column_removed"
	KindTypeChanged       = "type_changed"
	KindRowCountIncreased = "row_count_increased"
	KindRowCountDecreased = "row_count_decreased"
	KindValuesChanged     = "values_changed"
)

// SeverityForChange returns the default severity of a change kind.
// Threshold-gated kinds are escalated to BLOCK by Classify.
func SeverityForChange(kind string) string {
	switch kind {
	case KindColumnRemoved, KindTypeChanged:
		return SeverityBlock
	case KindRowCountDecreased:
		return SeverityWarn
	case KindColumnAdded, KindRowCountIncreased, KindValuesChanged:
		return SeverityInfo
	default:
		return SeverityInfo
	}
}

// MessageForChange returns the human-readable text for a change.
func MessageForChange(kind, column, from, to string) string {
	switch kind {
	case KindColumnAdded:
		return "column added: " + column
	case KindColumnRemoved:
		return "column removed: " + column
	case KindTypeChanged:
		return fmt.Sprintf("type changed for column %s: %s → %s", column, from, to)
	case KindRowCountIncreased:
		return fmt.Sprintf("row count increased (%s → %s)", from, to)
	case KindRowCountDecreased:
		return fmt.Sprintf("row count decreased (%s → %s)", from, to)
	case KindValuesChanged:
		return fmt.Sprintf("values changed for column %s: %s of rows", column, to)
	default:
		return ""
	}
}
