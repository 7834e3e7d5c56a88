// Package config loads anafora-eval settings from a YAML file. Command-line
// flags are applied on top with Merge.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

// Config represents the complete anafora-eval configuration
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

// ScoringConfig selects what is scored and how annotations are matched
type ScoringConfig struct {
	// Include lists Type[:Property[:Value]] tokens to score (empty = all)
	Include []string `yaml:"include"`
	// Exclude lists Type[:Property[:Value]] tokens to skip
	Exclude []string `yaml:"exclude"`
	// Overlap matches spans by overlap instead of identity
	Overlap bool `yaml:"overlap"`
	// XMLNameRegex selects annotator files in multi-annotator mode
	XMLNameRegex string `yaml:"xml_name_regex"`
}

// LogConfig configures the global logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// OutputConfig configures where results go besides the stdout table
type OutputConfig struct {
	// Format of stdout: table or json
	Format string `yaml:"format"`
	// Report is a JSON report path; ".xz" compresses it
	Report string `yaml:"report"`
	// Database is an SQLite results store path
	Database string `yaml:"database"`
	// MetricsFile is a Prometheus textfile path
	MetricsFile string `yaml:"metrics_file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			XMLNameRegex: anafora.DefaultXMLNameRegex,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := regexp.Compile(c.Scoring.XMLNameRegex); err != nil {
		return fmt.Errorf("scoring.xml_name_regex is invalid: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format must be table or json, got %q", c.Output.Format)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Scoring
	if len(other.Scoring.Include) > 0 {
		c.Scoring.Include = other.Scoring.Include
	}
	if len(other.Scoring.Exclude) > 0 {
		c.Scoring.Exclude = other.Scoring.Exclude
	}
	if other.Scoring.Overlap {
		c.Scoring.Overlap = true
	}
	if other.Scoring.XMLNameRegex != "" {
		c.Scoring.XMLNameRegex = other.Scoring.XMLNameRegex
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Report != "" {
		c.Output.Report = other.Output.Report
	}
	if other.Output.Database != "" {
		c.Output.Database = other.Output.Database
	}
	if other.Output.MetricsFile != "" {
		c.Output.MetricsFile = other.Output.MetricsFile
	}
}
