// Package config loads gappc settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after Load.
type Config struct {
	Maxima  MaximaConfig  `yaml:"maxima"`
	Cache   CacheConfig   `yaml:"cache"`
	Algebra AlgebraConfig `yaml:"algebra"`
	Symbols SymbolsConfig `yaml:"symbols"`
}

// MaximaConfig controls the CAS subprocess.
type MaximaConfig struct {
	Command     string        `yaml:"command"`
	Args        []string      `yaml:"args"`
	Timeout     time.Duration `yaml:"timeout"`
	TempDir     string        `yaml:"temp_dir"`
	Concurrency int           `yaml:"concurrency"`
}

// CacheConfig controls the optimizer result cache. An empty Path
// disables caching.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// AlgebraConfig describes the basis selectors index into.
type AlgebraConfig struct {
	Name   string `yaml:"name"`
	Blades int    `yaml:"blades"`
}

// SymbolsConfig controls name resolution. When Strict is set every name
// must be declared before use.
type SymbolsConfig struct {
	Strict bool `yaml:"strict"`
}

// Default returns the built-in configuration: the conformal algebra
// (32 blades) and maxima from /usr/bin in batch mode.
func Default() Config {
	return Config{
		Maxima: MaximaConfig{
			Command:     "/usr/bin/maxima",
			Args:        []string{"-b"},
			Timeout:     30 * time.Second,
			Concurrency: 4,
		},
		Algebra: AlgebraConfig{
			Name:   "cga",
			Blades: 32,
		},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Maxima.Command) == "" {
		errs = append(errs, errors.New("maxima.command must not be empty"))
	}
	if c.Maxima.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("maxima.timeout must be positive, got %s", c.Maxima.Timeout))
	}
	if c.Maxima.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("maxima.concurrency must be at least 1, got %d", c.Maxima.Concurrency))
	}
	if c.Algebra.Blades <= 0 {
		errs = append(errs, fmt.Errorf("algebra.blades must be positive, got %d", c.Algebra.Blades))
	}
	return errors.Join(errs...)
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
