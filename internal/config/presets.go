package config

import "sort"

var Presets = map[string]*Config{
	"example": {
		Cards: DefaultCards, Target: 8,
	},
	"miss-high": {
		Cards: DefaultCards, Target: 100,
	},
	"miss-low": {
		Cards: DefaultCards, Target: 1,
	},
	"miss-between": {
		Cards: DefaultCards, Target: 14,
	},
	"first": {
		Cards: DefaultCards, Target: 2,
	},
	"last": {
		Cards: DefaultCards, Target: 25,
	},
	"single": {
		Cards: "1", Target: 1,
	},
	"empty": {
		Cards: "", Target: 1,
	},
	"odd": {
		Cards: "1, 3, 5, 7, 9, 11, 13, 15, 17", Target: 11,
	},
	"powers": {
		Cards: "1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768", Target: 1024,
	},
}

// GetPreset returns a copy of the named preset filled with defaults for the
// fields the preset leaves empty, or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Cards = p.Cards
	cfg.Target = p.Target
	if p.Policy != "" {
		cfg.Policy = p.Policy
	}
	if p.Numbering != "" {
		cfg.Numbering = p.Numbering
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
