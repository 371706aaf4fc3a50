package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for maze rendering and the TUI chrome.
type Theme struct {
	Name      string
	Wall      lipgloss.Color
	Primary   lipgloss.Color // walker heads
	Secondary lipgloss.Color // walker trails
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:      "classic",
		Wall:      lipgloss.Color("#E9EAEC"),
		Primary:   lipgloss.Color("#FAD02C"), // Mustard
		Secondary: lipgloss.Color("#90ADC6"), // Steel blue
		Accent:    lipgloss.Color("#FAD02C"),
		Text:      lipgloss.Color("#E9EAEC"),
		Muted:     lipgloss.Color("#333652"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Wall:      lipgloss.Color("#00ffff"), // Cyan
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#ffff00"), // Yellow
		Accent:    lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Wall:      lipgloss.Color("#00cc00"), // Green phosphor
		Primary:   lipgloss.Color("#88ff88"),
		Secondary: lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Wall:      lipgloss.Color("#ffffff"),
		Primary:   lipgloss.Color("#0088ff"),
		Secondary: lipgloss.Color("#888888"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Wall:      lipgloss.Color("#00a8cc"), // Ocean blue
		Primary:   lipgloss.Color("#ffd700"),
		Secondary: lipgloss.Color("#4488aa"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	// All available themes; the first is the default
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
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

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
