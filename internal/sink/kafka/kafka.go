package kafka

import (
	"context"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"github.com/alexanderjulianmartinez/data-diff/internal/sink"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

var _ sink.Sink = (*Sink)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sink writes one message per comparison, keyed by comparison name so all
// results of a dataset land on the same partition.
type Sink struct {
	topic string
	w     messageWriter
}

func New(brokers []string, topic string) *Sink {
	return &Sink{
		topic: topic,
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (s *Sink) Name() string {
	return "kafka:" + s.topic
}

func (s *Sink) Publish(ctx context.Context, comparison string, result *types.ComparisonResult) error {
	msg, err := newMessage(comparison, result)
	if err != nil {
		return err
	}
	if err := s.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to kafka topic %s: %w", s.topic, err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.w.Close()
}

func newMessage(comparison string, result *types.ComparisonResult) (kafka.Message, error) {
	payload, err := sink.Encode(comparison, result)
	if err != nil {
		return kafka.Message{}, err
	}
	regression := "false"
	if result.Regression.IsRegression {
		regression = "true"
	}
	return kafka.Message{
		Key:   []byte(comparison),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "run_id", Value: []byte(result.RunID)},
			{Key: "regression", Value: []byte(regression)},
		},
		Time: result.GeneratedAt,
	}, nil
}
