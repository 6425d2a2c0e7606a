package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Algorithm: "bubble", Size: 12, Speed: 120, Pattern: "random",
		MinValue: 10, MaxValue: 400, ResetMode: "restore", Theme: DefaultTheme, FPS: DefaultFPS,
	},
	"large": {
		Algorithm: "quick", Size: 120, Speed: 200, Pattern: "random",
		MinValue: 10, MaxValue: 400, ResetMode: "restore", Theme: DefaultTheme, FPS: DefaultFPS,
	},
	"reversed": {
		Algorithm: "insertion", Size: 40, Speed: 190, Pattern: "reversed",
		MinValue: 10, MaxValue: 400, ResetMode: "restore", Theme: DefaultTheme, FPS: DefaultFPS,
	},
	"nearly-sorted": {
		Algorithm: "insertion", Size: 60, Speed: 180, Pattern: "nearly-sorted",
		MinValue: 10, MaxValue: 400, ResetMode: "restore", Theme: DefaultTheme, FPS: DefaultFPS,
	},
	"few-unique": {
		Algorithm: "quick", Size: 60, Speed: 180, Pattern: "few-unique",
		MinValue: 10, MaxValue: 400, ResetMode: "restore", Theme: DefaultTheme, FPS: DefaultFPS,
	},
	"merge-demo": {
		Algorithm: "merge", Size: 32, Speed: 150, Pattern: "random",
		MinValue: 10, MaxValue: 400, ResetMode: "rebase", Theme: "ocean", FPS: DefaultFPS,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
