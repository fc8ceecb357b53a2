package prefs

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "prefs"
	themeProperty = "theme"
)

// Preferences is what gets persisted. The theme is the only flag today.
type Preferences struct {
	Theme string `yaml:"theme"`
}

// Store keeps preferences in memory and mirrors them to gdata. A nil
// manager runs memory-only.
type Store struct {
	mu     sync.Mutex
	mgr    *gdata.Manager
	prefs  Preferences
	logger *slog.Logger
}

// Open opens the per-user data directory for appName. If that fails the
// store still works, it just forgets everything on exit.
func Open(appName string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	mgr, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("preferences unavailable, using memory only", "app", appName, "error", err)
		mgr = nil
	}
	return New(mgr, logger)
}

func New(mgr *gdata.Manager, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{mgr: mgr, logger: logger}
	if err := s.load(); err != nil {
		logger.Warn("failed to load preferences", "error", err)
	}
	return s
}

// Persistent reports whether changes survive a restart.
func (s *Store) Persistent() bool { return s.mgr != nil }

func (s *Store) load() error {
	if s.mgr == nil || !s.mgr.ObjectPropExists(prefsObject, themeProperty) {
		return nil
	}
	data, err := s.mgr.LoadObjectProp(prefsObject, themeProperty)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	var p Preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode preferences: %w", err)
	}
	s.prefs = p
	return nil
}

func (s *Store) save() error {
	if s.mgr == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.mgr.SaveObjectProp(prefsObject, themeProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Theme returns the stored theme name, empty when none was chosen.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

func (s *Store) SetTheme(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = name
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Debug("theme saved", "theme", name, "persistent", s.mgr != nil)
	return nil
}

// Reset forgets the stored theme.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = Preferences{}
	return s.save()
}
