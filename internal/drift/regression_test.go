package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

func emptySchema() types.SchemaDiff {
	return types.SchemaDiff{Added: []string{}, Removed: []string{}, TypeChanges: map[string]types.TypeChange{}}
}

func steadyValues(rows int) types.ValueDiff {
	return types.ValueDiff{
		PreviousRowCount: rows,
		CurrentRowCount:  rows,
		ChangedColumns:   map[string]types.ColumnChange{},
	}
}

func TestClassify_NoChanges(t *testing.T) {
	v := Classify(emptySchema(), steadyValues(10), Policy{})
	assert.False(t, v.IsRegression)
	assert.Empty(t, v.Reasons)
	assert.Empty(t, v.Findings)
}

func TestClassify_RemovedColumn(t *testing.T) {
	s := emptySchema()
	s.Removed = []string{"val"}
	v := Classify(s, steadyValues(2), Policy{})
	assert.True(t, v.IsRegression)
	assert.Equal(t, []string{"column removed: val"}, v.Reasons)
}

func TestClassify_TypeChange(t *testing.T) {
	s := emptySchema()
	s.TypeChanges["val"] = types.TypeChange{Previous: "int64", Current: "string"}
	v := Classify(s, steadyValues(2), Policy{})
	assert.True(t, v.IsRegression)
	assert.Equal(t, []string{"type changed for column val: int64 → string"}, v.Reasons)
}

func TestClassify_CollectsAllReasons(t *testing.T) {
	s := emptySchema()
	s.Removed = []string{"b", "a"}
	s.TypeChanges["z"] = types.TypeChange{Previous: "int64", Current: "string"}
	s.TypeChanges["c"] = types.TypeChange{Previous: "bool", Current: "timestamp"}
	v := Classify(s, steadyValues(2), Policy{})
	assert.Equal(t, []string{
		"column removed: b",
		"column removed: a",
		"type changed for column c: bool → timestamp",
		"type changed for column z: int64 → string",
	}, v.Reasons)
}

func TestClassify_Monotonicity(t *testing.T) {
	base := Classify(emptySchema(), steadyValues(10), Policy{})
	assert.False(t, base.IsRegression)

	added := emptySchema()
	added.Added = []string{"status"}
	assert.False(t, Classify(added, steadyValues(10), Policy{}).IsRegression, "added column must not flag")

	grown := steadyValues(10)
	grown.CurrentRowCount = 15
	grown.RowCountDelta = 5
	assert.False(t, Classify(emptySchema(), grown, Policy{}).IsRegression, "row growth must not flag")

	removed := emptySchema()
	removed.Removed = []string{"x"}
	assert.True(t, Classify(removed, steadyValues(10), Policy{}).IsRegression)

	changed := emptySchema()
	changed.TypeChanges["x"] = types.TypeChange{Previous: "int64", Current: "float64"}
	assert.True(t, Classify(changed, steadyValues(10), Policy{}).IsRegression)
}

func TestClassify_RowDecreaseIsWarningByDefault(t *testing.T) {
	values := steadyValues(2)
	values.CurrentRowCount = 1
	values.RowCountDelta = -1

	v := Classify(emptySchema(), values, Policy{})
	assert.False(t, v.IsRegression)
	if assert.Len(t, v.Findings, 1) {
		assert.Equal(t, KindRowCountDecreased, v.Findings[0].Kind)
		assert.Equal(t, SeverityWarn, v.Findings[0].Severity)
	}
}

func TestClassify_RowDecreaseThreshold(t *testing.T) {
	values := steadyValues(100)
	values.CurrentRowCount = 80
	values.RowCountDelta = -20

	assert.True(t, Classify(emptySchema(), values, Policy{RowDecreaseThresholdPct: 10}).IsRegression)
	assert.False(t, Classify(emptySchema(), values, Policy{RowDecreaseThresholdPct: 20}).IsRegression, "threshold is exclusive")

	v := Classify(emptySchema(), values, Policy{RowDecreaseThresholdPct: 5})
	assert.Equal(t, []string{"row count decreased (100 → 80)"}, v.Reasons)
}

func TestClassify_ChangedRowThreshold(t *testing.T) {
	values := steadyValues(10)
	values.ChangedColumns["price"] = types.ColumnChange{ChangedRowCount: 4, ChangedRowPercentage: 40}
	values.ChangedColumns["qty"] = types.ColumnChange{ChangedRowCount: 1, ChangedRowPercentage: 10}

	assert.False(t, Classify(emptySchema(), values, Policy{}).IsRegression)

	v := Classify(emptySchema(), values, Policy{ChangedRowThresholdPct: 25})
	assert.True(t, v.IsRegression)
	assert.Equal(t, []string{"values changed for column price: 40.0% of rows"}, v.Reasons)
}

func TestSeverityForChange(t *testing.T) {
	assert.Equal(t, SeverityBlock, SeverityForChange(KindColumnRemoved))
	assert.Equal(t, SeverityBlock, SeverityForChange(KindTypeChanged))
	assert.Equal(t, SeverityWarn, SeverityForChange(KindRowCountDecreased))
	assert.Equal(t, SeverityInfo, SeverityForChange(KindColumnAdded))
	assert.Equal(t, SeverityInfo, SeverityForChange("unknown"))
}
