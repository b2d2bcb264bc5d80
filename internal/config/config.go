// Package config loads and validates replay run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one replay run.
type Config struct {
	// File is the path of the workload log to replay.
	File string `json:"file" yaml:"file"`

	// Loop restarts from the top of the log instead of stopping when it
	// is exhausted.
	Loop bool `json:"loop,omitempty" yaml:"loop,omitempty"`

	// EmbeddedHeaders enables per-record header blocks in the log.
	EmbeddedHeaders bool `json:"embeddedHeaders,omitempty" yaml:"embeddedHeaders,omitempty"`

	// BaseURL is prepended to every captured target.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Workers is the number of concurrent request issuers.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	// Rate caps request admission per second; 0 means unlimited.
	Rate float64 `json:"rate,omitempty" yaml:"rate,omitempty"`

	// Timeout applies to each request.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// AddHeaders are escaped header strings applied to every request,
	// using the same grammar as embedded header blocks.
	AddHeaders []string `json:"addHeaders,omitempty" yaml:"addHeaders,omitempty"`

	// Verbose reports each produced target and issued request.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Load reads a configuration file. The format is chosen by extension:
// .json is JSON, anything else (including .yaml/.yml) parses as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses configuration data, using path's extension to pick the
// format.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks the configuration for a runnable replay.
func (c *Config) Validate() error {
	if c.File == "" {
		return &ValidationError{Field: "file", Message: "workload log path is required"}
	}
	if c.BaseURL == "" {
		return &ValidationError{Field: "baseUrl", Message: "base URL is required"}
	}
	if c.Workers < 0 {
		return &ValidationError{Field: "workers", Message: "workers must be >= 0"}
	}
	if c.Rate < 0 {
		return &ValidationError{Field: "rate", Message: "rate must be >= 0"}
	}
	if c.Timeout < 0 {
		return &ValidationError{Field: "timeout", Message: "timeout must be >= 0"}
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error on field '" + e.Field + "': " + e.Message
}
