// Package config loads optional defaults for the rotate command from YAML.
//
// Example file:
//
//	format: json
//	verbose: true
//	database: ./rotate.db
//
// Unknown keys are rejected so typos surface instead of being ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ValidFormats lists the accepted values of Config.Format.
var ValidFormats = []string{FormatCSV, FormatJSON}

// Config holds settings that may come from a file or from flags.
type Config struct {
	// Format selects the output rendering: "csv" (default) or "json".
	Format string `yaml:"format"`

	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"verbose"`

	// Database is an optional SQLite path for the run history.
	// Empty disables history recording.
	Database string `yaml:"database,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{Format: FormatCSV}
}

// Load reads and validates a YAML config file. Fields missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data. Empty data yields Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	return nil
}
