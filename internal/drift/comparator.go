// Package drift compares two snapshots of a dataset and classifies the
// difference as a regression or not.
package drift

import (
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

// Comparator holds one pair of snapshots and the settings for comparing
// them. It keeps no state between calls; build a new one per comparison.
type Comparator struct {
	current     *dataset.Dataset
	previous    *dataset.Dataset
	primaryKeys []string
	policy      Policy
	workers     int
	logger      *zap.Logger
	now         func() time.Time
}

type Option func(*Comparator)

func WithPolicy(p Policy) Option {
	return func(c *Comparator) { c.policy = p }
}

// WithWorkers compares up to n columns concurrently.
func WithWorkers(n int) Option {
	return func(c *Comparator) { c.workers = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Comparator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time stamped on results.
func WithClock(now func() time.Time) Option {
	return func(c *Comparator) { c.now = now }
}

func New(current, previous *dataset.Dataset, primaryKeys []string, opts ...Option) *Comparator {
	c := &Comparator{
		current:     current,
		previous:    previous,
		primaryKeys: append([]string{}, primaryKeys...),
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Comparator) CompareSchema() types.SchemaDiff {
	return DiffSchema(c.current, c.previous)
}

func (c *Comparator) CompareValues() (types.ValueDiff, error) {
	return DiffValues(c.current, c.previous, c.primaryKeys, ValueOptions{
		Workers: c.workers,
		Logger:  c.logger,
	})
}

// GenerateStatistics runs schema diff, value diff and classification in that
// order and assembles the result. Key problems are reported before any diff
// work starts.
func (c *Comparator) GenerateStatistics() (*types.ComparisonResult, error) {
	if err := validateKeys(c.current, c.previous, c.primaryKeys); err != nil {
		return nil, err
	}
	start := time.Now()

	schema := c.CompareSchema()
	values, err := c.CompareValues()
	if err != nil {
		return nil, err
	}
	verdict := Classify(schema, values, c.policy)

	result := &types.ComparisonResult{
		RunID:       uuid.NewString(),
		GeneratedAt: c.now().UTC(),
		PrimaryKeys: c.primaryKeys,
		Schema:      schema,
		Values:      values,
		Regression:  verdict,
		Summary: types.Summary{
			TotalColumnsCurrent:      c.current.NumColumns(),
			TotalColumnsPrevious:     c.previous.NumColumns(),
			TotalSchemaIssues:        len(schema.Removed) + len(schema.TypeChanges),
			ColumnsWithValueChanges:  len(values.ChangedColumns),
			RowCountChangePercentage: signedPercentage(values.RowCountDelta, values.PreviousRowCount),
		},
	}

	c.logger.Debug("comparison finished",
		zap.String("run_id", result.RunID),
		zap.String("strategy", values.Strategy),
		zap.Bool("regression", verdict.IsRegression),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// PrintReport generates the statistics and writes the text report to w.
func (c *Comparator) PrintReport(w io.Writer) (*types.ComparisonResult, error) {
	result, err := c.GenerateStatistics()
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, FormatReport(result)); err != nil {
		return result, err
	}
	return result, nil
}

func signedPercentage(delta, base int) float64 {
	if delta < 0 {
		return -percentage(-delta, base)
	}
	return percentage(delta, base)
}
