package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexanderjulianmartinez/data-diff/internal/sink"
	"github.com/alexanderjulianmartinez/data-diff/pkg/types"
)

var _ sink.Sink = (*Sink)(nil)

// Sink keeps every result of the run in one JSON document keyed by
// comparison name, rewriting the file after each publish.
type Sink struct {
	path    string
	mu      sync.Mutex
	results map[string]*types.ComparisonResult
}

func New(path string) *Sink {
	return &Sink{path: path, results: map[string]*types.ComparisonResult{}}
}

func (s *Sink) Name() string {
	return "file:" + s.path
}

func (s *Sink) Publish(_ context.Context, comparison string, result *types.ComparisonResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[comparison] = result
	data, err := json.MarshalIndent(s.results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Sink) Close() error { return nil }
