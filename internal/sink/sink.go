// Package sink publishes comparison results outside the process.
package sink

import (
	"context"
	"encoding/json"

	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

type Sink interface {
	Name() string
	Publish(ctx context.Context, comparison string, result *types.ComparisonResult) error
	Close() error
}

// Envelope is the payload every sink writes for one comparison.
type Envelope struct {
	Comparison string                  `json:"comparison"`
	Result     *types.ComparisonResult `json:"result"`
}

func Encode(comparison string, result *types.ComparisonResult) ([]byte, error) {
	return json.Marshal(Envelope{Comparison: comparison, Result: result})
}
