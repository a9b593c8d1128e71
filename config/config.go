// Package config provides configuration loading and defaults for the
// vec-outliers CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the CLI.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Store   StoreConfig   `yaml:"store"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// StoreConfig holds the embedding store location.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ScoringConfig holds scorer settings.
type ScoringConfig struct {
	K           int     `yaml:"k"`
	Metric      string  `yaml:"metric"`
	Backend     string  `yaml:"backend"`
	Percentile  float64 `yaml:"percentile"`
	Parallelism int     `yaml:"parallelism"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{DatabasePath: "./embeddings.db"},
		Scoring: ScoringConfig{
			K:          10,
			Metric:     "cosine",
			Backend:    "brute",
			Percentile: 5,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Store.DatabasePath == "" {
		return fmt.Errorf("config: store.database_path must not be empty")
	}
	if c.Scoring.K <= 0 {
		return fmt.Errorf("config: scoring.k must be positive, got %d", c.Scoring.K)
	}
	switch c.Scoring.Metric {
	case "cosine", "euclidean":
	default:
		return fmt.Errorf("config: unknown scoring.metric %q", c.Scoring.Metric)
	}
	switch c.Scoring.Backend {
	case "brute", "vptree", "hnsw":
	default:
		return fmt.Errorf("config: unknown scoring.backend %q", c.Scoring.Backend)
	}
	if c.Scoring.Percentile < 0 || c.Scoring.Percentile > 100 {
		return fmt.Errorf("config: scoring.percentile %v outside [0,100]", c.Scoring.Percentile)
	}
	if c.Scoring.Parallelism < 0 {
		return fmt.Errorf("config: scoring.parallelism must not be negative")
	}
	return nil
}
