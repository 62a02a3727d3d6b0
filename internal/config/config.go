// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-optimizer/internal/strategy"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Job    string `json:"job,omitempty"`     // Path to job posting text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job posting from
	Resume string `json:"resume,omitempty"`  // Path to résumé file (.txt, .md, .pdf, .docx)
	Output string `json:"output,omitempty"`  // Path to write the result to (stdout when empty)

	// Behavior
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	LocalOnly       bool   `json:"local_only,omitempty"`       // Never call the LLM
	UseBrowser      bool   `json:"use_browser,omitempty"`      // Use headless browser for SPA sites
	Verbose         bool   `json:"verbose,omitempty"`          // Log at debug level
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty"`  // LLM budget per extraction call
	OptimizeSeconds int    `json:"optimize_seconds,omitempty"` // LLM budget for résumé generation

	Scoring *Scoring `json:"scoring,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the commands after merging with flags.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.OptimizeSeconds < 0 {
		return fmt.Errorf("config error: 'optimize_seconds' must be non-negative")
	}

	for name, path := range map[string]string{"job": c.Job, "resume": c.Resume} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	if c.Scoring != nil {
		if err := c.Scoring.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.OptimizeSeconds == 0 {
		result.OptimizeSeconds = defaults.OptimizeSeconds
	}
	if result.Scoring == nil {
		result.Scoring = defaults.Scoring
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// StrategyConfig builds the extraction strategy configuration.
func (c *Config) StrategyConfig() strategy.Config {
	return strategy.Config{
		APIKey:          c.APIKey,
		LocalOnly:       c.LocalOnly,
		Timeout:         time.Duration(c.TimeoutSeconds) * time.Second,
		OptimizeTimeout: time.Duration(c.OptimizeSeconds) * time.Second,
		Scoring:         c.Scoring.Resolve(),
	}
}
