// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ATS_STRICT_MODE=true.
const EnvPrefix = "ATS"

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume   string `json:"resume,omitempty" mapstructure:"resume"`     // Path to resume document
	Job      string `json:"job,omitempty" mapstructure:"job"`           // Path to job description file
	JobURL   string `json:"job_url,omitempty" mapstructure:"job_url"`   // URL to fetch job posting from
	Taxonomy string `json:"taxonomy,omitempty" mapstructure:"taxonomy"` // Path to a taxonomy file replacing the built-in one

	// Extraction
	MinWordLength      int  `json:"min_word_length,omitempty" mapstructure:"min_word_length"`
	MaxWordLength      int  `json:"max_word_length,omitempty" mapstructure:"max_word_length"`
	ScoreCapPerKeyword int  `json:"score_cap_per_keyword,omitempty" mapstructure:"score_cap_per_keyword"`
	StrictMode         bool `json:"strict_mode,omitempty" mapstructure:"strict_mode"`
	MinPartialLength   int  `json:"min_partial_length,omitempty" mapstructure:"min_partial_length"`

	// Behavior
	Format     string `json:"format,omitempty" mapstructure:"format"`           // Output format: text or json
	LogFormat  string `json:"log_format,omitempty" mapstructure:"log_format"`   // Log format: text or json
	UseBrowser bool   `json:"use_browser,omitempty" mapstructure:"use_browser"` // Use headless browser for SPA job pages
	Verbose    bool   `json:"verbose,omitempty" mapstructure:"verbose"`         // Print detailed debug information
	Port       int    `json:"port,omitempty" mapstructure:"port"`               // HTTP server port
}

// keys lists every config key so environment overrides apply even when the
// file omits them.
var keys = []string{
	"resume", "job", "job_url", "taxonomy",
	"min_word_length", "max_word_length", "score_cap_per_keyword", "strict_mode", "min_partial_length",
	"format", "log_format", "use_browser", "verbose", "port",
}

// LoadConfig loads configuration from a JSON or YAML file, then applies
// ATS_-prefixed environment overrides.
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

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from ATS_-prefixed environment variables alone.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := newViper().Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	return v
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.MinWordLength < 0 {
		return fmt.Errorf("config error: 'min_word_length' must be non-negative")
	}
	if c.MaxWordLength < 0 {
		return fmt.Errorf("config error: 'max_word_length' must be non-negative")
	}
	if c.MinWordLength > 0 && c.MaxWordLength > 0 && c.MinWordLength > c.MaxWordLength {
		return fmt.Errorf("config error: 'min_word_length' must not exceed 'max_word_length'")
	}
	if c.ScoreCapPerKeyword < 0 {
		return fmt.Errorf("config error: 'score_cap_per_keyword' must be non-negative")
	}
	if c.MinPartialLength < 0 {
		return fmt.Errorf("config error: 'min_partial_length' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'format' must be 'text' or 'json', got %q", c.Format)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be 'text' or 'json', got %q", c.LogFormat)
	}

	// Validate file paths exist (if specified)
	for field, path := range map[string]string{"resume": c.Resume, "job": c.Job, "taxonomy": c.Taxonomy} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", field, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" && result.JobURL == "" {
		result.Job = defaults.Job
		result.JobURL = defaults.JobURL
	}
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.MinWordLength == 0 {
		result.MinWordLength = defaults.MinWordLength
	}
	if result.MaxWordLength == 0 {
		result.MaxWordLength = defaults.MaxWordLength
	}
	if result.ScoreCapPerKeyword == 0 {
		result.ScoreCapPerKeyword = defaults.ScoreCapPerKeyword
	}
	if result.MinPartialLength == 0 {
		result.MinPartialLength = defaults.MinPartialLength
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ExtractionOptions converts the extraction settings to keywords.Options.
// Unset values fall back to the extractor defaults.
func (c *Config) ExtractionOptions() keywords.Options {
	return keywords.Options{
		MinWordLength:      c.MinWordLength,
		MaxWordLength:      c.MaxWordLength,
		ScoreCapPerKeyword: c.ScoreCapPerKeyword,
		StrictMode:         c.StrictMode,
		MinPartialLength:   c.MinPartialLength,
	}
}
