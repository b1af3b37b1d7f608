package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Pivot   lipgloss.Color
	Found   lipgloss.Color
	Missing lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
		Pivot:   lipgloss.Color("#ffff00"),
		Found:   lipgloss.Color("#00ff88"),
		Missing: lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#00aa00"),
		Pivot:   lipgloss.Color("#ffff00"),
		Found:   lipgloss.Color("#88ff88"),
		Missing: lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#cccccc"),
		Pivot:   lipgloss.Color("#0088ff"),
		Found:   lipgloss.Color("#00ff00"),
		Missing: lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#0077be"),
		Pivot:   lipgloss.Color("#ffd700"),
		Found:   lipgloss.Color("#00ff88"),
		Missing: lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
