package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/logging"
)

var version = "dev"

// errRegression is returned when a regression was found and the run was
// asked to fail on it.
var errRegression = errors.New("regression detected")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, errRegression) {
			fmt.Fprintln(os.Stderr, "datadiff:", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "datadiff error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "datadiff",
		Short: "Compare two snapshots of a dataset and flag regressions",
		Long: `datadiff compares a previous and a current snapshot of the same table.
It reports schema changes, per-column value changes and whether the
differences amount to a regression.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (console, json)")

	root.AddCommand(newCompareCmd(g), newCheckCmd(g), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the datadiff version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datadiff %s\n", version)
		},
	}
}

// newLogger builds the process logger; flag values win over fallback.
func (g *globalFlags) newLogger(fallbackLevel, fallbackFormat string) (*zap.Logger, error) {
	level, format := g.logLevel, g.logFormat
	if level == "" {
		level = fallbackLevel
	}
	if format == "" {
		format = fallbackFormat
	}
	return logging.New(level, format)
}
