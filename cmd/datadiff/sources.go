package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderjulianmartinez/data-diff/internal/config"
	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
	"github.com/alexanderjulianmartinez/data-diff/internal/source"
	"github.com/alexanderjulianmartinez/data-diff/internal/source/mysql"
	"github.com/alexanderjulianmartinez/data-diff/internal/source/parquet"
)

func nopClose() error { return nil }

// openSource returns a loader for cfg and the function that releases it.
func openSource(cfg config.SourceConfig, logger *zap.Logger) (source.Loader, func() error, error) {
	switch cfg.Type {
	case config.SourceParquet:
		return parquet.NewLoader(cfg.Path, logger), nopClose, nil
	case config.SourceMySQL:
		insp, err := mysql.NewInspector(cfg.DSN, cfg.Schema, cfg.Table, logger)
		if err != nil {
			return nil, nil, err
		}
		return insp, insp.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}

// loadPair loads both snapshots of cmp concurrently.
func loadPair(ctx context.Context, cmp config.ComparisonConfig, logger *zap.Logger) (current, previous *dataset.Dataset, err error) {
	g, ctx := errgroup.WithContext(ctx)
	load := func(cfg config.SourceConfig, dst **dataset.Dataset, role string) {
		g.Go(func() error {
			loader, closeFn, err := openSource(cfg, logger)
			if err != nil {
				return fmt.Errorf("%s %s: %w", cmp.Name, role, err)
			}
			defer func() { _ = closeFn() }()

			ds, err := loader.Load(ctx)
			if err != nil {
				return fmt.Errorf("%s %s: load %s: %w", cmp.Name, role, loader.Name(), err)
			}
			logger.Debug("loaded snapshot",
				zap.String("comparison", cmp.Name),
				zap.String("role", role),
				zap.String("source", loader.Name()),
				zap.Int("rows", ds.NumRows()),
				zap.Int("columns", ds.NumColumns()),
			)
			*dst = ds
			return nil
		})
	}
	load(cmp.Current, &current, "current")
	load(cmp.Previous, &previous, "previous")

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}
