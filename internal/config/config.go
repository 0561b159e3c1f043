package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/data-diff/internal/drift"
)

type Config struct {
	Comparisons      []ComparisonConfig `yaml:"comparisons"`
	Policy           drift.Policy       `yaml:"policy"`
	Workers          int                `yaml:"workers"`
	FailOnRegression bool               `yaml:"failOnRegression"`
	Sinks            []SinkConfig       `yaml:"sinks"`
	Log              LogConfig          `yaml:"log"`
}

type ComparisonConfig struct {
	Name       string       `yaml:"name"`
	Previous   SourceConfig `yaml:"previous"`
	Current    SourceConfig `yaml:"current"`
	PrimaryKey []string     `yaml:"primaryKey"`
}

type SourceConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
	Table  string `yaml:"table"`
}

type SinkConfig struct {
	Type    string        `yaml:"type"`
	Path    string        `yaml:"path"`
	Brokers []string      `yaml:"brokers"`
	Topic   string        `yaml:"topic"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	SourceParquet = "parquet"
	SourceMySQL   = "mysql"

	SinkFile    = "file"
	SinkKafka   = "kafka"
	SinkWebhook = "webhook"
)

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	for i := range c.Sinks {
		if c.Sinks[i].Type == SinkWebhook && c.Sinks[i].Timeout == 0 {
			c.Sinks[i].Timeout = 5 * time.Second
		}
	}
}

func (c *Config) validate() error {
	if len(c.Comparisons) == 0 {
		return errors.New("at least one comparison is required")
	}
	seen := map[string]bool{}
	for _, cmp := range c.Comparisons {
		if cmp.Name == "" {
			return errors.New("comparison.name is required")
		}
		if seen[cmp.Name] {
			return fmt.Errorf("comparison %s is defined more than once", cmp.Name)
		}
		seen[cmp.Name] = true
		if err := cmp.Previous.validate(); err != nil {
			return fmt.Errorf("comparison %s: previous: %w", cmp.Name, err)
		}
		if err := cmp.Current.validate(); err != nil {
			return fmt.Errorf("comparison %s: current: %w", cmp.Name, err)
		}
	}
	if c.Policy.RowDecreaseThresholdPct < 0 {
		return errors.New("policy.rowDecreaseThresholdPct must not be negative")
	}
	if c.Policy.ChangedRowThresholdPct < 0 {
		return errors.New("policy.changedRowThresholdPct must not be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	for _, sink := range c.Sinks {
		if err := sink.validate(); err != nil {
			return err
		}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func (s SourceConfig) validate() error {
	switch s.Type {
	case SourceParquet:
		if s.Path == "" {
			return errors.New("parquet source requires path")
		}
	case SourceMySQL:
		if s.DSN == "" {
			return errors.New("mysql source requires dsn")
		}
		if s.Table == "" {
			return errors.New("mysql source requires table")
		}
	default:
		return fmt.Errorf("source.type must be parquet or mysql, got %q", s.Type)
	}
	return nil
}

func (s SinkConfig) validate() error {
	switch s.Type {
	case SinkFile:
		if s.Path == "" {
			return errors.New("file sink requires path")
		}
	case SinkKafka:
		if len(s.Brokers) == 0 {
			return errors.New("kafka sink requires brokers")
		}
		if s.Topic == "" {
			return errors.New("kafka sink requires topic")
		}
	case SinkWebhook:
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("webhook sink requires a valid url, got %q", s.URL)
		}
	default:
		return fmt.Errorf("sink.type must be file, kafka or webhook, got %q", s.Type)
	}
	return nil
}
