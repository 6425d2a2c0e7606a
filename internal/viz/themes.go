package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/export"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	// Bar colours, one per highlight
	Bar     lipgloss.Color
	Compare lipgloss.Color
	Swap    lipgloss.Color
	Write   lipgloss.Color
	Sorted  lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"), // Magenta
		Secondary:  lipgloss.Color("#00ffff"), // Cyan
		Accent:     lipgloss.Color("#ffff00"), // Yellow
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
		Bar:        lipgloss.Color("#8888aa"),
		Compare:    lipgloss.Color("#ffff00"),
		Swap:       lipgloss.Color("#ff0055"),
		Write:      lipgloss.Color("#00ffff"),
		Sorted:     lipgloss.Color("#00ff88"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		Bar:        lipgloss.Color("#008800"),
		Compare:    lipgloss.Color("#ccff00"),
		Swap:       lipgloss.Color("#ffffff"),
		Write:      lipgloss.Color("#88ff88"),
		Sorted:     lipgloss.Color("#00ff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
		Bar:        lipgloss.Color("#94a3b8"),
		Compare:    lipgloss.Color("#facc15"),
		Swap:       lipgloss.Color("#f87171"),
		Write:      lipgloss.Color("#4ade80"),
		Sorted:     lipgloss.Color("#34d399"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
		Bar:        lipgloss.Color("#336699"),
		Compare:    lipgloss.Color("#ffd700"),
		Swap:       lipgloss.Color("#ff4444"),
		Write:      lipgloss.Color("#00a8cc"),
		Sorted:     lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
		Bar:        lipgloss.Color("#8b6b8c"),
		Compare:    lipgloss.Color("#feca57"),
		Swap:       lipgloss.Color("#ff4757"),
		Write:      lipgloss.Color("#ff9ff3"),
		Sorted:     lipgloss.Color("#5fd068"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// BarColor is the fill for a bar carrying h.
func (t Theme) BarColor(h display.Highlight) lipgloss.Color {
	switch h {
	case display.Comparing:
		return t.Compare
	case display.Swapped:
		return t.Swap
	case display.Written:
		return t.Write
	case display.Sorted:
		return t.Sorted
	}
	return t.Bar
}

// Palette converts the bar colours for file export.
func (t Theme) Palette() export.Palette {
	p := export.Palette{}
	for h := display.Neutral; h <= display.Sorted; h++ {
		p[h] = string(t.BarColor(h))
	}
	return p
}
