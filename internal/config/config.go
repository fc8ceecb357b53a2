package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/termfolio/internal/reveal"
	"github.com/san-kum/termfolio/internal/typewriter"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme            = "cyberpunk"
	DefaultLogLevel         = "info"
	DefaultThreshold        = 0.1
	DefaultRootMargin       = "0px 0px -2px 0px"
	DefaultScrollDebounceMs = 60
)

// ErrInvalid indicates a config value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Content          string       `yaml:"content"`
	Theme            string       `yaml:"theme"`
	LogLevel         string       `yaml:"log_level"`
	LogFile          string       `yaml:"log_file"`
	Typing           TypingConfig `yaml:"typing"`
	Reveal           RevealConfig `yaml:"reveal"`
	ScrollDebounceMs int          `yaml:"scroll_debounce_ms"`
}

type TypingConfig struct {
	TypeMs      int `yaml:"type_ms"`
	DeleteMs    int `yaml:"delete_ms"`
	HoldFullMs  int `yaml:"hold_full_ms"`
	HoldEmptyMs int `yaml:"hold_empty_ms"`
}

type RevealConfig struct {
	Threshold  float64 `yaml:"threshold"`
	RootMargin string  `yaml:"root_margin"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:         DefaultLogLevel,
		Typing:           *GetPreset("default"),
		Reveal:           RevealConfig{Threshold: DefaultThreshold, RootMargin: DefaultRootMargin},
		ScrollDebounceMs: DefaultScrollDebounceMs,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Environment variables that override file values.
const (
	EnvTheme    = "TERMFOLIO_THEME"
	EnvLogLevel = "TERMFOLIO_LOG_LEVEL"
	EnvContent  = "TERMFOLIO_CONTENT"
	EnvTypeMs   = "TERMFOLIO_TYPE_MS"
)

// ApplyEnv loads the given dotenv files (default ".env"), ignoring missing
// ones, then applies TERMFOLIO_* overrides from the environment.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvContent); v != "" {
		c.Content = v
	}
	if v := os.Getenv(EnvTypeMs); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvTypeMs, v)
		}
		c.Typing.TypeMs = ms
	}
	return nil
}

func (c *Config) Validate() error {
	t := c.Typing
	if t.TypeMs <= 0 || t.DeleteMs <= 0 || t.HoldFullMs < 0 || t.HoldEmptyMs < 0 {
		return fmt.Errorf("%w: typing delays must be positive (type=%d delete=%d hold_full=%d hold_empty=%d)",
			ErrInvalid, t.TypeMs, t.DeleteMs, t.HoldFullMs, t.HoldEmptyMs)
	}
	if c.ScrollDebounceMs < 0 {
		return fmt.Errorf("%w: scroll_debounce_ms %d", ErrInvalid, c.ScrollDebounceMs)
	}
	if _, err := c.RevealOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) Timing() typewriter.Timing {
	return typewriter.Timing{
		Type:      ms(c.Typing.TypeMs),
		Delete:    ms(c.Typing.DeleteMs),
		HoldFull:  ms(c.Typing.HoldFullMs),
		HoldEmpty: ms(c.Typing.HoldEmptyMs),
	}
}

func (c *Config) RevealOptions() (reveal.Options, error) {
	margin, err := reveal.ParseMargin(c.Reveal.RootMargin)
	if err != nil {
		return reveal.Options{}, err
	}
	opts := reveal.Options{Threshold: c.Reveal.Threshold, RootMargin: margin}
	if err := opts.Validate(); err != nil {
		return reveal.Options{}, err
	}
	return opts, nil
}

func (c *Config) ScrollDebounce() time.Duration { return ms(c.ScrollDebounceMs) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
