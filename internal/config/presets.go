package config

import "sort"

// Presets are named typing speeds.
var Presets = map[string]*TypingConfig{
	"default": {TypeMs: 150, DeleteMs: 100, HoldFullMs: 2000, HoldEmptyMs: 500},
	"snappy":  {TypeMs: 60, DeleteMs: 30, HoldFullMs: 1200, HoldEmptyMs: 250},
	"relaxed": {TypeMs: 220, DeleteMs: 140, HoldFullMs: 3000, HoldEmptyMs: 800},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *TypingConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
