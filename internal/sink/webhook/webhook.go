package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alexanderjulianmartinez/data-diff/internal/sink"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

var _ sink.Sink = (*Sink)(nil)

// Sink POSTs each result as JSON to a fixed URL.
type Sink struct {
	url    string
	client *http.Client
}

func New(url string, timeout time.Duration) *Sink {
	return &Sink{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *Sink) Name() string {
	return "webhook:" + s.url
}

func (s *Sink) Publish(ctx context.Context, comparison string, result *types.ComparisonResult) error {
	payload, err := sink.Encode(comparison, result)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Datadiff-Comparison", comparison)
	req.Header.Set("X-Datadiff-Run-Id", result.RunID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status: %d", resp.StatusCode)
	}
	return nil
}

func (s *Sink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
