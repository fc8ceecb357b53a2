package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/termfolio/internal/reveal"
	"github.com/san-kum/termfolio/internal/typewriter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Timing() != typewriter.DefaultTiming() {
		t.Errorf("expected default timing, got %+v", cfg.Timing())
	}
	opts, err := cfg.RevealOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Threshold != 0.1 || opts.RootMargin != (reveal.Margin{Bottom: -2}) {
		t.Errorf("unexpected reveal options %+v", opts)
	}
	if cfg.ScrollDebounce() != 60*time.Millisecond {
		t.Errorf("unexpected debounce %v", cfg.ScrollDebounce())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termfolio.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "ocean"
	cfg.Typing.TypeMs = 80
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Theme != "ocean" || loaded.Typing.TypeMs != 80 {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.Reveal.RootMargin != DefaultRootMargin {
		t.Errorf("expected root margin kept, got %q", loaded.Reveal.RootMargin)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termfolio.yaml")
	if err := os.WriteFile(path, []byte("reveal:\n  threshold: 0.15\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reveal.Threshold != 0.15 || cfg.Typing.TypeMs != 150 {
		t.Errorf("expected threshold override and default typing, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero type delay", func(c *Config) { c.Typing.TypeMs = 0 }},
		{"negative hold", func(c *Config) { c.Typing.HoldFullMs = -1 }},
		{"bad threshold", func(c *Config) { c.Reveal.Threshold = 2 }},
		{"bad margin", func(c *Config) { c.Reveal.RootMargin = "1em" }},
		{"negative debounce", func(c *Config) { c.ScrollDebounceMs = -5 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TERMFOLIO_THEME=sunset\nTERMFOLIO_TYPE_MS=90\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvTypeMs, "")
	os.Unsetenv(EnvTheme)
	os.Unsetenv(EnvTypeMs)

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Theme != "sunset" || cfg.Typing.TypeMs != 90 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config after env %+v", cfg)
	}
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv(EnvTypeMs, "fast")
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env")); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("snappy")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.TypeMs != 60 {
		t.Errorf("expected type 60ms, got %d", p.TypeMs)
	}
	p.TypeMs = 1
	if Presets["snappy"].TypeMs != 60 {
		t.Error("GetPreset returned a shared pointer")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if got := ListPresets(); len(got) != 3 || got[0] != "default" {
		t.Errorf("unexpected presets %v", got)
	}
}
