package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	opts := Default()

	if err := opts.Validate(); err != nil {
		t.Fatalf("default options do not validate: %v", err)
	}
	if len(opts.Extensions) != 7 {
		t.Errorf("got %d extensions, want 7", len(opts.Extensions))
	}
	if len(opts.Locations) != 4 {
		t.Errorf("got %d locations, want 4", len(opts.Locations))
	}
	if opts.Root != "." {
		t.Errorf("root = %q, want %q", opts.Root, ".")
	}
}

func TestLoadOverlay(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.json")
	content := `{
		"locations": ["user", "aircraft", "ground", "scenery", "sound"],
		"debounceSeconds": 5
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(opts.Locations) != 5 {
		t.Errorf("got %d locations, want 5", len(opts.Locations))
	}
	if opts.DebounceSeconds != 5 {
		t.Errorf("debounceSeconds = %d, want 5", opts.DebounceSeconds)
	}
	// Extensions keep their defaults.
	if len(opts.Extensions) != 7 {
		t.Errorf("got %d extensions, want 7", len(opts.Extensions))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if configErr.Type != FileNotFound {
		t.Errorf("error type = %v, want %v", configErr.Type, FileNotFound)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if configErr.Type != InvalidJSON {
		t.Errorf("error type = %v, want %v", configErr.Type, InvalidJSON)
	}
}

func TestValidateRejectsBadVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty extensions", func(o *Options) { o.Extensions = nil }},
		{"empty locations", func(o *Options) { o.Locations = nil }},
		{"uppercase extension", func(o *Options) { o.Extensions = []string{"SRF"} }},
		{"dotted extension", func(o *Options) { o.Extensions = []string{".srf"} }},
		{"spaced location", func(o *Options) { o.Locations = []string{"my dir"} }},
		{"negative debounce", func(o *Options) { o.DebounceSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRules(t *testing.T) {
	opts := Default()
	rules := opts.Rules()

	if got := rules.Normalize(`User\My Plane.srf`); got != "user/my_plane.srf" {
		t.Errorf("Normalize = %q", got)
	}
}
