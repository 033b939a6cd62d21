package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"layermap/internal/analyzer"
	"layermap/internal/model"
)

// Config is the root of a layermap.toml file.
type Config struct {
	Version   int             `toml:"version"`
	Scan      ScanConfig      `toml:"scan"`
	Extract   ExtractConfig   `toml:"extract"`
	Layers    LayersConfig    `toml:"layers"`
	History   HistoryConfig   `toml:"history"`
	Output    Output          `toml:"output"`
	Watch     Watch           `toml:"watch"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ScanConfig configures directory traversal.
type ScanConfig struct {
	IgnoreDirs []string `toml:"ignore_dirs"`
	BatchSize  int      `toml:"batch_size"`
}

// ExtractConfig configures the extraction fan-out.
type ExtractConfig struct {
	BatchSize    int    `toml:"batch_size"`
	MemoryWarnMB uint64 `toml:"memory_warn_mb"`
}

// LayersConfig lets a workspace extend the built-in layer cascade. Extra
// is keyed by layer name ("presentation", "business", "data", "utils",
// "config") and appends patterns to that layer's existing cascade.
type LayersConfig struct {
	Extra map[string][]string `toml:"extra"`
}

// HistoryConfig configures the sqlite-backed run-history store.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Watch configures -watch mode's debounce window.
type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

// Output names the export files a completed run writes, when set.
type Output struct {
	DOT     string `toml:"dot"`
	Mermaid string `toml:"mermaid"`
	JSON    string `toml:"json"`
}

// RateLimitConfig paces file-content reads during extraction with a token
// bucket: PerSecond reads per second, up to Burst at once. It does not bound
// how many reads are in flight; the extraction batch size does that.
// PerSecond of 0 disables rate limiting entirely.
type RateLimitConfig struct {
	PerSecond float64 `toml:"per_second"`
	Burst     int     `toml:"burst"`
}

// Default returns a Config with every field at its built-in default,
// equivalent to what Load produces from an empty TOML file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and decodes a TOML file at path, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Scan.BatchSize <= 0 {
		cfg.Scan.BatchSize = 10
	}
	if cfg.Extract.BatchSize <= 0 {
		cfg.Extract.BatchSize = analyzer.DefaultExtractBatchSize
	}
	if cfg.Extract.MemoryWarnMB == 0 {
		cfg.Extract.MemoryWarnMB = analyzer.DefaultMemoryWarnMB
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "layermap-history.db"
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
}

// AnalyzerConfig converts this TOML-decoded Config into the analyzer
// package's own Config shape.
func (c *Config) AnalyzerConfig() analyzer.Config {
	var ignoreDirs map[string]bool
	if len(c.Scan.IgnoreDirs) > 0 {
		ignoreDirs = make(map[string]bool, len(c.Scan.IgnoreDirs))
		for _, d := range c.Scan.IgnoreDirs {
			ignoreDirs[d] = true
		}
	}

	extra := make(map[model.Layer][]string, len(c.Layers.Extra))
	for name, patterns := range c.Layers.Extra {
		extra[model.Layer(name)] = patterns
	}

	return analyzer.Config{
		IgnoreDirs:         ignoreDirs,
		ScanBatchSize:      c.Scan.BatchSize,
		ExtractBatchSize:   c.Extract.BatchSize,
		MemoryWarnMB:       c.Extract.MemoryWarnMB,
		ExtraLayerPatterns: extra,
		RateLimitPerSecond: c.RateLimit.PerSecond,
		RateLimitBurst:     c.RateLimit.Burst,
	}
}
