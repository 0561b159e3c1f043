package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := "../../examples/config.yaml"
	if _, err := os.Stat(path); err != nil {
		t.Skip("examples config not present")
	}
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Comparisons, 2)
	assert.Equal(t, []string{"id"}, cfg.Comparisons[0].PrimaryKey)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.FailOnRegression)
	require.Len(t, cfg.Sinks, 3)
	assert.Equal(t, 5*time.Second, cfg.Sinks[2].Timeout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
comparisons:
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
sinks:
  - {type: webhook, url: "http://example.com/hook"}
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.Sinks[0].Timeout)
	assert.Empty(t, cfg.Comparisons[0].PrimaryKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"no comparisons": `comparisons: []`,
		"unknown source": `
comparisons:
  - name: t1
    previous: {type: notmysql, dsn: x}
    current: {type: parquet, path: b.parquet}
`,
		"mysql without table": `
comparisons:
  - name: t1
    previous: {type: mysql, dsn: "u:p@tcp(h)/db"}
    current: {type: parquet, path: b.parquet}
`,
		"duplicate names": `
comparisons:
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
`,
		"negative threshold": `
comparisons:
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
policy:
  rowDecreaseThresholdPct: -1
`,
		"kafka without topic": `
comparisons:
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
sinks:
  - {type: kafka, brokers: [localhost:9092]}
`,
		"bad webhook url": `
comparisons:
  - name: t1
    previous: {type: parquet, path: a.parquet}
    current: {type: parquet, path: b.parquet}
sinks:
  - {type: webhook, url: not-a-url}
`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	_, err = LoadConfig("")
	assert.Error(t, err)
}
