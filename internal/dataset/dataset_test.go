package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicateColumns(t *testing.T) {
	_, err := New(
		NewColumn("id", Int64, Int(1)),
		NewColumn("id", Int64, Int(2)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestNew_RejectsRaggedColumns(t *testing.T) {
	_, err := New(
		NewColumn("id", Int64, Int(1), Int(2)),
		NewColumn("val", Int64, Int(10)),
	)
	require.Error(t, err)
}

func TestNew_Empty(t *testing.T) {
	ds, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumRows())
	assert.Equal(t, 0, ds.NumColumns())
	assert.Empty(t, ds.ColumnNames())
}

func TestColumnLookup(t *testing.T) {
	ds := MustNew(
		NewColumn("id", Int64, Int(1)),
		NewColumn("name", String, Str("a")),
	)
	col, ok := ds.Column("name")
	require.True(t, ok)
	assert.Equal(t, String, col.Type)
	assert.False(t, ds.HasColumn("Name"))
	assert.Equal(t, []string{"id", "name"}, ds.ColumnNames())
}

func TestEqual_NullAware(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"both null", Null(), Null(), true},
		{"nan and null", Float(math.NaN()), Null(), true},
		{"nan and nan", Float(math.NaN()), Float(math.NaN()), true},
		{"null and zero", Null(), Int(0), false},
		{"zero and null", Int(0), Null(), false},
		{"int and float", Int(10), Float(10), true},
		{"int and fractional float", Int(10), Float(10.5), false},
		{"bool and int", Boolean(true), Int(1), true},
		{"uint and int", Uint(7), Int(7), true},
		{"string and bytes", Str("ab"), Bytes([]byte("ab")), true},
		{"string and int", Str("100"), Int(100), false},
		{"times", Time(time.Unix(10, 0)), Time(time.Unix(10, 0).UTC()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestKey_MatchesEqualValues(t *testing.T) {
	assert.Equal(t, Int(3).Key(), Float(3).Key())
	assert.Equal(t, Int(3).Key(), Uint(3).Key())
	assert.NotEqual(t, Int(3).Key(), Str("3").Key())
	assert.Equal(t, Null().Key(), Float(math.NaN()).Key())
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(Int64, Float64))
	assert.True(t, Comparable(Bool, Int32))
	assert.True(t, Comparable(String, Binary))
	assert.True(t, Comparable(Timestamp, Date))
	assert.False(t, Comparable(Int64, String))
	assert.False(t, Comparable(Other, String))
	assert.False(t, Comparable(Other, Other))
}

func TestColumnsComparable(t *testing.T) {
	list := Column{Name: "x", Type: Other, TypeName: "list<item: int64, nullable>"}
	strct := Column{Name: "x", Type: Other, TypeName: "struct<a: int64>"}
	assert.True(t, ColumnsComparable(list, list))
	assert.False(t, ColumnsComparable(list, strct))
	assert.False(t, ColumnsComparable(list, NewColumn("x", String)))
	assert.True(t, ColumnsComparable(NewColumn("x", Int64), NewColumn("x", Float32)))
}

func TestSameDeclaredType(t *testing.T) {
	dec := func(name string) Column { return Column{Name: "p", Type: Other, TypeName: name} }
	ts := func(name string) Column { return Column{Name: "t", Type: Timestamp, TypeName: name} }

	assert.False(t, SameDeclaredType(dec("decimal128(10, 2)"), dec("decimal128(20, 3)")))
	assert.True(t, SameDeclaredType(dec("decimal128(10, 2)"), dec("decimal128(10, 2)")))
	assert.False(t, SameDeclaredType(ts("timestamp[ms]"), ts("timestamp[us, tz=UTC]")))
	assert.True(t, SameDeclaredType(ts("timestamp[ms]"), NewColumn("t", Timestamp)))
	assert.False(t, SameDeclaredType(NewColumn("a", Int64), NewColumn("a", Int32)))
	assert.Equal(t, "int64", NewColumn("a", Int64).DeclaredType())
	assert.Equal(t, "decimal128(10, 2)", dec("decimal128(10, 2)").DeclaredType())
}

func TestEqual_LargeNumbersAreExact(t *testing.T) {
	assert.True(t, Equal(Int(1<<60), Float(1<<60)))
	assert.False(t, Equal(Int(1<<53+1), Float(1<<53)))
	assert.False(t, Equal(Uint(1<<63+1), Float(1<<63)))
	assert.True(t, Equal(Uint(1<<63), Float(1<<63)))
	assert.False(t, Equal(Uint(1<<63), Int(math.MinInt64)))
	assert.False(t, Equal(Float(twoTo64), Uint(math.MaxUint64)))
}

func TestKey_LargeIntegralFloats(t *testing.T) {
	assert.Equal(t, Int(1<<60).Key(), Float(1<<60).Key())
	assert.Equal(t, Int(-1<<62).Key(), Float(-1<<62).Key())
	assert.Equal(t, Uint(1<<63).Key(), Float(1<<63).Key())
	assert.NotEqual(t, Float(1<<63).Key(), Float(twoTo64).Key())
}
