package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/config"
	"github.com/alexanderjulianmartinez/data-diff/internal/drift"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check --config <path>",
		Short: "Run every comparison in a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := g.newLogger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			results, err := runCheck(cmd.Context(), cfg, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if cfg.FailOnRegression && anyRegression(results) {
				return errRegression
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.yaml")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// runCheck runs each configured comparison in order. A failed comparison is
// recorded with StatusError and the run continues; the returned error joins
// every comparison and publish failure.
func runCheck(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) ([]types.CheckResult, error) {
	sinks, err := openSinks(cfg.Sinks)
	if err != nil {
		return nil, err
	}

	var (
		results []types.CheckResult
		errs    []error
	)
	for _, cmp := range cfg.Comparisons {
		start := time.Now()
		res, err := runComparison(ctx, cfg, cmp, logger, out)
		if err != nil {
			logger.Error("comparison failed", zap.String("comparison", cmp.Name), zap.Error(err))
			results = append(results, types.CheckResult{Name: cmp.Name, Status: types.StatusError})
			errs = append(errs, err)
			continue
		}
		logger.Info("comparison finished",
			zap.String("comparison", cmp.Name),
			zap.Bool("regression", res.Regression.IsRegression),
			zap.Duration("elapsed", time.Since(start)),
		)
		results = append(results, types.NewCheckResult(cmp.Name, res))
		if err := publish(ctx, sinks, cmp.Name, res, logger); err != nil {
			errs = append(errs, err)
		}
	}

	if err := closeSinks(sinks); err != nil {
		errs = append(errs, err)
	}
	if err := printSummary(out, results); err != nil {
		errs = append(errs, fmt.Errorf("print summary: %w", err))
	}
	return results, errors.Join(errs...)
}

func runComparison(ctx context.Context, cfg *config.Config, cmp config.ComparisonConfig, logger *zap.Logger, out io.Writer) (*types.ComparisonResult, error) {
	current, previous, err := loadPair(ctx, cmp, logger)
	if err != nil {
		return nil, err
	}

	report := drift.Validate(current, previous, cmp.PrimaryKey)
	logIssues(logger, cmp.Name, report)

	fmt.Fprintf(out, "\n[%s]\n", cmp.Name)
	c := drift.New(current, previous, cmp.PrimaryKey,
		drift.WithPolicy(cfg.Policy),
		drift.WithWorkers(cfg.Workers),
		drift.WithLogger(logger.With(zap.String("comparison", cmp.Name))),
	)
	res, err := c.PrintReport(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmp.Name, err)
	}
	return res, nil
}

func anyRegression(results []types.CheckResult) bool {
	for _, r := range results {
		if r.Regression {
			return true
		}
	}
	return false
}

func printSummary(w io.Writer, results []types.CheckResult) error {
	table := tablewriter.NewTable(w, tablewriter.WithRowAlignment(tw.AlignLeft))
	table.Header("Comparison", "Schema drift", "Row delta %", "Changed columns", "Status")
	for _, r := range results {
		if err := table.Append(summaryRow(r)); err != nil {
			return fmt.Errorf("summary row %s: %w", r.Name, err)
		}
	}
	return table.Render()
}

func summaryRow(r types.CheckResult) []string {
	if r.Status == types.StatusError {
		return []string{r.Name, "-", "-", "-", paintStatus(r.Status)}
	}
	schemaDrift := "no"
	if r.SchemaDrift {
		schemaDrift = "yes"
	}
	return []string{
		r.Name,
		schemaDrift,
		fmt.Sprintf("%+.2f", r.RowCountDeltaPct),
		fmt.Sprintf("%d", r.ChangedColumns),
		paintStatus(r.Status),
	}
}

func paintStatus(status string) string {
	switch status {
	case types.StatusOK:
		return color.New(color.FgHiGreen).SprintFunc()(status)
	case types.StatusRegression:
		return color.New(color.FgHiRed).SprintFunc()(status)
	default:
		return color.New(color.FgHiYellow).SprintFunc()(status)
	}
}

