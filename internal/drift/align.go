package drift

import (
	"strconv"
	"strings"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

type rowPair struct {
	prev, cur int
}

// alignment is the set of row pairs that are comparable value by value.
type alignment struct {
	strategy          string
	pairs             []rowPair
	unmatchedPrevious int
	unmatchedCurrent  int
}

// keyIndex is a multimap from encoded key tuple to row indices, in order of
// appearance.
type keyIndex struct {
	order  []string
	rows   map[string][]int
	unique bool
}

func buildKeyIndex(ds *dataset.Dataset, keys []string) keyIndex {
	cols := make([]dataset.Column, len(keys))
	for i, key := range keys {
		cols[i], _ = ds.Column(key)
	}

	idx := keyIndex{rows: make(map[string][]int, ds.NumRows()), unique: true}
	var sb strings.Builder
	for row := 0; row < ds.NumRows(); row++ {
		sb.Reset()
		for _, col := range cols {
			// Length-prefixed so that no two tuples share an encoding.
			k := col.Values[row].Key()
			sb.WriteString(strconv.Itoa(len(k)))
			sb.WriteByte(':')
			sb.WriteString(k)
		}
		k := sb.String()
		existing, seen := idx.rows[k]
		if !seen {
			idx.order = append(idx.order, k)
		} else {
			idx.unique = false
		}
		idx.rows[k] = append(existing, row)
	}
	return idx
}

func align(current, previous *dataset.Dataset, keys []string) alignment {
	if len(keys) == 0 {
		return alignPositional(current, previous)
	}
	prevIdx := buildKeyIndex(previous, keys)
	curIdx := buildKeyIndex(current, keys)
	if prevIdx.unique && curIdx.unique {
		return alignIndex(prevIdx, curIdx, current.NumRows(), previous.NumRows())
	}
	return alignMerge(prevIdx, curIdx, current.NumRows(), previous.NumRows())
}

// alignPositional pairs row i with row i up to the shorter snapshot.
func alignPositional(current, previous *dataset.Dataset) alignment {
	n := min(current.NumRows(), previous.NumRows())
	a := alignment{
		strategy:          types.StrategyPositional,
		pairs:             make([]rowPair, n),
		unmatchedPrevious: previous.NumRows() - n,
		unmatchedCurrent:  current.NumRows() - n,
	}
	for i := range n {
		a.pairs[i] = rowPair{prev: i, cur: i}
	}
	return a
}

// alignIndex joins rows whose unique key appears on both sides.
func alignIndex(prevIdx, curIdx keyIndex, curRows, prevRows int) alignment {
	a := alignment{strategy: types.StrategyIndex}
	for _, k := range prevIdx.order {
		cur, ok := curIdx.rows[k]
		if !ok {
			continue
		}
		a.pairs = append(a.pairs, rowPair{prev: prevIdx.rows[k][0], cur: cur[0]})
	}
	a.unmatchedPrevious = prevRows - len(a.pairs)
	a.unmatchedCurrent = curRows - len(a.pairs)
	return a
}

// alignMerge is the outer join used when keys repeat: the i-th occurrence of
// a key in previous pairs with its i-th occurrence in current, extra
// occurrences on either side stay unmatched.
func alignMerge(prevIdx, curIdx keyIndex, curRows, prevRows int) alignment {
	a := alignment{strategy: types.StrategyMerge}
	for _, k := range prevIdx.order {
		prev := prevIdx.rows[k]
		cur := curIdx.rows[k]
		for i := range min(len(prev), len(cur)) {
			a.pairs = append(a.pairs, rowPair{prev: prev[i], cur: cur[i]})
		}
	}
	a.unmatchedPrevious = prevRows - len(a.pairs)
	a.unmatchedCurrent = curRows - len(a.pairs)
	return a
}
