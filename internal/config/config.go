// Package config handles configuration loading and validation for addonlinux.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"addonlinux/internal/normalizer"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Options holds all settings for a conversion run. Root and the
// behavior toggles come from the command line; the vocabularies and
// watch settings may be overridden by an optional JSON file.
type Options struct {
	Root    string `json:"-"` // directory to convert
	Verbose bool   `json:"-"`
	DryRun  bool   `json:"-"`

	// Extensions and Locations drive the normalizer's space
	// disambiguation. Overriding them is only useful for unusual
	// addon layouts; the defaults match the simulator.
	Extensions []string `json:"extensions,omitempty"`
	Locations  []string `json:"locations,omitempty"`

	// AuditDirectory is where the run log is written, relative to
	// Root unless absolute.
	AuditDirectory string `json:"auditDirectory,omitempty"`

	// Watch-mode settings.
	DebounceSeconds int      `json:"debounceSeconds,omitempty"`
	IgnorePatterns  []string `json:"ignorePatterns,omitempty"`
}

// Default returns the options used when no configuration file is given.
func Default() Options {
	rules := normalizer.DefaultRules()
	return Options{
		Root:            ".",
		Extensions:      rules.Extensions,
		Locations:       rules.Locations,
		AuditDirectory:  ".addonlinux",
		DebounceSeconds: 2,
	}
}

// Load reads a JSON configuration file and overlays it on the
// defaults. Fields absent from the file keep their default values.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, &ConfigError{Type: FileNotFound, Path: path}
		}
		return opts, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, &ConfigError{Type: InvalidJSON, Path: path, Message: err.Error()}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

// Validate checks that the options are usable. Vocabulary entries
// must already be canonical (lowercase, no spaces) or the normalizer
// could emit names the renamer would never produce.
func (o *Options) Validate() error {
	if len(o.Extensions) == 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "extensions must contain at least one entry",
		}
	}
	if len(o.Locations) == 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "locations must contain at least one entry",
		}
	}

	for _, ext := range o.Extensions {
		if ext != strings.ToLower(ext) || strings.Contains(ext, " ") || strings.Contains(ext, ".") {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("extension %q must be lowercase without spaces or dots", ext),
			}
		}
	}
	for _, loc := range o.Locations {
		if loc != strings.ToLower(loc) || strings.Contains(loc, " ") {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("location %q must be lowercase without spaces", loc),
			}
		}
	}

	if o.DebounceSeconds < 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "debounceSeconds cannot be negative",
		}
	}

	return nil
}

// Rules returns the normalizer rules described by the options.
func (o *Options) Rules() normalizer.Rules {
	return normalizer.Rules{
		Extensions: o.Extensions,
		Locations:  o.Locations,
	}
}
