package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/config"
	"github.com/alexanderjulianmartinez/data-diff/internal/drift"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

type compareOptions struct {
	current          string
	previous         string
	primaryKeys      []string
	jsonOut          string
	workers          int
	failOnRegression bool
	policy           drift.Policy
}

func newCompareCmd(g *globalFlags) *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare --current <file> --previous <file>",
		Short: "Compare two Parquet snapshots",
		Example: `  datadiff compare --current data_current.parquet --previous data_previous.parquet --primary-key id
  datadiff compare --current cur.parquet --previous prev.parquet --json out/report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.newLogger("info", "console")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			res, err := runCompare(cmd.Context(), opts, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if opts.failOnRegression && res.Regression.IsRegression {
				return errRegression
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.current, "current", "", "Path to the current Parquet snapshot")
	f.StringVar(&opts.previous, "previous", "", "Path to the previous Parquet snapshot")
	f.StringArrayVar(&opts.primaryKeys, "primary-key", nil, "Primary key column (repeatable)")
	f.StringVar(&opts.jsonOut, "json", "", "Write the full result as JSON to this path")
	f.IntVar(&opts.workers, "workers", 0, "Columns compared in parallel (0 or 1 = sequential)")
	f.BoolVar(&opts.failOnRegression, "fail-on-regression", false, "Exit with status 2 when a regression is detected")
	f.Float64Var(&opts.policy.RowDecreaseThresholdPct, "row-decrease-threshold", 0, "Row-count drop percentage above which the drop is a regression (0 = never)")
	f.Float64Var(&opts.policy.ChangedRowThresholdPct, "changed-row-threshold", 0, "Changed-row percentage above which a column is a regression (0 = never)")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("previous")
	return cmd
}

func runCompare(ctx context.Context, opts *compareOptions, logger *zap.Logger, out io.Writer) (*types.ComparisonResult, error) {
	if opts.workers < 0 {
		return nil, fmt.Errorf("--workers must not be negative")
	}
	if opts.policy.RowDecreaseThresholdPct < 0 || opts.policy.ChangedRowThresholdPct < 0 {
		return nil, fmt.Errorf("thresholds must not be negative")
	}

	cmp := config.ComparisonConfig{
		Name:       "compare",
		Previous:   config.SourceConfig{Type: config.SourceParquet, Path: opts.previous},
		Current:    config.SourceConfig{Type: config.SourceParquet, Path: opts.current},
		PrimaryKey: opts.primaryKeys,
	}
	current, previous, err := loadPair(ctx, cmp, logger)
	if err != nil {
		return nil, err
	}

	logIssues(logger, cmp.Name, drift.Validate(current, previous, opts.primaryKeys))

	c := drift.New(current, previous, opts.primaryKeys,
		drift.WithPolicy(opts.policy),
		drift.WithWorkers(opts.workers),
		drift.WithLogger(logger),
	)
	res, err := c.PrintReport(out)
	if err != nil {
		return nil, err
	}

	if opts.jsonOut != "" {
		if err := writeJSON(opts.jsonOut, res); err != nil {
			return nil, err
		}
		logger.Info("wrote comparison result", zap.String("path", opts.jsonOut))
	}
	return res, nil
}

func writeJSON(path string, res *types.ComparisonResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func logIssues(logger *zap.Logger, comparison string, report *drift.Report) {
	for _, issue := range report.Issues {
		fields := []zap.Field{
			zap.String("comparison", comparison),
			zap.String("severity", issue.Severity),
		}
		if issue.Column != "" {
			fields = append(fields, zap.String("column", issue.Column))
		}
		switch issue.Severity {
		case drift.SeverityBlock:
			logger.Error(issue.Message, fields...)
		case drift.SeverityWarn:
			logger.Warn(issue.Message, fields...)
		default:
			logger.Info(issue.Message, fields...)
		}
	}
}
