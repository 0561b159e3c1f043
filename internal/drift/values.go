package drift

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

// ValueOptions tunes DiffValues. The zero value compares columns serially
// and discards logs.
type ValueOptions struct {
	// Workers > 1 compares that many columns concurrently.
	Workers int
	Logger  *zap.Logger
}

type columnPair struct {
	name      string
	prev, cur dataset.Column
}

// DiffValues compares the cells of every column common to both snapshots.
// Rows are aligned on keys when given (falling back to a multiplicity-aware
// merge if a key repeats) and by position otherwise. Key columns themselves
// are not reported.
func DiffValues(current, previous *dataset.Dataset, keys []string, opts ValueOptions) (types.ValueDiff, error) {
	if err := validateKeys(current, previous, keys); err != nil {
		return types.ValueDiff{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := align(current, previous, keys)
	logger.Debug("aligned rows",
		zap.String("strategy", a.strategy),
		zap.Int("matched", len(a.pairs)),
		zap.Int("unmatched_previous", a.unmatchedPrevious),
		zap.Int("unmatched_current", a.unmatchedCurrent),
	)

	diff := types.ValueDiff{
		PreviousRowCount:      previous.NumRows(),
		CurrentRowCount:       current.NumRows(),
		RowCountDelta:         current.NumRows() - previous.NumRows(),
		ChangedColumns:        map[string]types.ColumnChange{},
		Strategy:              a.strategy,
		MatchedRows:           len(a.pairs),
		UnmatchedPreviousRows: a.unmatchedPrevious,
		UnmatchedCurrentRows:  a.unmatchedCurrent,
		IncomparableColumns:   []string{},
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	var targets []columnPair
	for _, name := range commonColumns(current, previous) {
		if isKey[name] {
			continue
		}
		cur, _ := current.Column(name)
		prev, _ := previous.Column(name)
		if err := checkComparable(prev, cur); err != nil {
			logger.Warn("skipping value comparison", zap.Error(err))
			diff.IncomparableColumns = append(diff.IncomparableColumns, name)
			continue
		}
		targets = append(targets, columnPair{name: name, prev: prev, cur: cur})
	}

	counts := countChanges(targets, a.pairs, opts.Workers)
	for i, target := range targets {
		if counts[i] == 0 {
			continue
		}
		diff.ChangedColumns[target.name] = types.ColumnChange{
			ChangedRowCount:      counts[i],
			ChangedRowPercentage: percentage(counts[i], len(a.pairs)),
		}
	}
	return diff, nil
}

// countChanges returns, per target column, the number of aligned rows whose
// values differ. Each column is independent so they may run concurrently.
func countChanges(targets []columnPair, pairs []rowPair, workers int) []int {
	counts := make([]int, len(targets))
	if workers <= 1 || len(targets) < 2 {
		for i, target := range targets {
			counts[i] = countColumn(target, pairs)
		}
		return counts
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, target := range targets {
		g.Go(func() error {
			counts[i] = countColumn(target, pairs)
			return nil
		})
	}
	_ = g.Wait()
	return counts
}

func countColumn(target columnPair, pairs []rowPair) int {
	changed := 0
	for _, p := range pairs {
		if !dataset.Equal(target.prev.Values[p.prev], target.cur.Values[p.cur]) {
			changed++
		}
	}
	return changed
}

// percentage returns part/base*100 rounded to two decimals, or 0 for an
// empty base.
func percentage(part, base int) float64 {
	if base == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(base)*100*100) / 100
}
