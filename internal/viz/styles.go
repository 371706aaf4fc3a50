package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Maze panel
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466"))

	// Status panel
	SidePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#aaaacc"))

	// Hints for controls unavailable in the current state
	KeyDisabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444455")).
			Strikethrough(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Title renders a bold heading in the theme's accent colour.
func Title(t Theme, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render(text)
}

// StateBadge renders a run state name coloured by its meaning.
func StateBadge(t Theme, state string) string {
	color := t.Muted
	switch state {
	case "running":
		color = t.Success
	case "finished":
		color = t.Accent
	case "idle":
		color = t.Warning
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(state))
}

// Hint renders one key binding, struck through when disabled.
func Hint(key, label string, enabled bool) string {
	if !enabled {
		return KeyDisabled.Render(key + " " + label)
	}
	return KeyHint.Render(key) + " " + Subtle.Render(label)
}

// ProgressBar renders a bar filled to percent in [0,1].
func ProgressBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// Decorative separator
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
