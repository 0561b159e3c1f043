package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderjulianmartinez/data-diff/internal/config"
	"github.com/alexanderjulianmartinez/data-diff/internal/sink"
	"github.com/alexanderjulianmartinez/data-diff/internal/sink/file"
	"github.com/alexanderjulianmartinez/data-diff/internal/sink/kafka"
	"github.com/alexanderjulianmartinez/data-diff/internal/sink/webhook"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

func openSink(cfg config.SinkConfig) (sink.Sink, error) {
	switch cfg.Type {
	case config.SinkFile:
		return file.New(cfg.Path), nil
	case config.SinkKafka:
		return kafka.New(cfg.Brokers, cfg.Topic), nil
	case config.SinkWebhook:
		return webhook.New(cfg.URL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", cfg.Type)
	}
}

func openSinks(cfgs []config.SinkConfig) ([]sink.Sink, error) {
	sinks := make([]sink.Sink, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := openSink(cfg)
		if err != nil {
			_ = closeSinks(sinks)
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func closeSinks(sinks []sink.Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// publish sends res to every sink. A failing sink does not stop the others.
func publish(ctx context.Context, sinks []sink.Sink, comparison string, res *types.ComparisonResult, logger *zap.Logger) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Publish(ctx, comparison, res); err != nil {
			logger.Error("publish failed",
				zap.String("comparison", comparison),
				zap.String("sink", s.Name()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		logger.Debug("published result", zap.String("comparison", comparison), zap.String("sink", s.Name()))
	}
	return errors.Join(errs...)
}
