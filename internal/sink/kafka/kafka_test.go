package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/data-diff/internal/sink"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	fw := &fakeWriter{}
	s := &Sink{topic: "datadiff.results", w: fw}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := &types.ComparisonResult{
		RunID:       "run-1",
		GeneratedAt: at,
		Regression:  types.RegressionVerdict{IsRegression: true, Reasons: []string{"column removed: val"}},
	}

	require.NoError(t, s.Publish(context.Background(), "orders", res))
	require.Len(t, fw.msgs, 1)
	msg := fw.msgs[0]
	assert.Equal(t, "orders", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	assert.Equal(t, []kafka.Header{
		{Key: "run_id", Value: []byte("run-1")},
		{Key: "regression", Value: []byte("true")},
	}, msg.Headers)

	var env sink.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "orders", env.Comparison)
	assert.Equal(t, []string{"column removed: val"}, env.Result.Regression.Reasons)

	require.NoError(t, s.Close())
	assert.True(t, fw.closed)
}

func TestPublish_WriteError(t *testing.T) {
	s := &Sink{topic: "t", w: &fakeWriter{err: errors.New("broker down")}}
	err := s.Publish(context.Background(), "orders", &types.ComparisonResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNew(t *testing.T) {
	s := New([]string{"localhost:9092"}, "datadiff.results")
	assert.Equal(t, "kafka:datadiff.results", s.Name())
	w, ok := s.w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "datadiff.results", w.Topic)
}
