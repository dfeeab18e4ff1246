// Package config defines process configuration for the identisearch
// binaries and its layered loading.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// DataDir holds the detail store.
	DataDir string `koanf:"data_dir"`

	// IndexDir holds the per-source full-text indexes.
	IndexDir string `koanf:"index_dir"`

	// OverFetch is the candidate multiplier for the search round trip.
	OverFetch int `koanf:"over_fetch"`

	// Fuzziness is the per-term edit-distance tolerance.
	Fuzziness int `koanf:"fuzziness"`

	// LookupPoolSize enables parallel detail lookups when positive.
	LookupPoolSize int `koanf:"lookup_pool_size"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		DataDir:        filepath.Join("data", "details"),
		IndexDir:       filepath.Join("data", "index"),
		OverFetch:      10,
		Fuzziness:      1,
		LookupPoolSize: 0,
		LogLevel:       "info",
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if IDENTISEARCH_CONFIG is set
//  3. env (prefix IDENTISEARCH_)
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path := os.Getenv("IDENTISEARCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Env keys like IDENTISEARCH_DATA_DIR map to flat koanf keys.
	// Underscores are preserved to match the struct tags.
	envProvider := env.Provider("IDENTISEARCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "identisearch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		return nil, errors.New("data_dir must not be empty")
	}
	if cfg.IndexDir == "" {
		return nil, errors.New("index_dir must not be empty")
	}
	if cfg.OverFetch < 1 {
		return nil, errors.New("over_fetch must be at least 1")
	}
	if cfg.Fuzziness < 0 {
		return nil, errors.New("fuzziness must not be negative")
	}
	return &cfg, nil
}
