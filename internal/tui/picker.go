package tui

import (
	"strings"

	"github.com/san-kum/tilemaze/internal/viz"
)

// picker is the tiling menu opened with "p".
type picker struct {
	names  []string
	cursor int
}

func newPicker(names []string, current string) *picker {
	p := &picker{names: names}
	for i, name := range names {
		if name == current {
			p.cursor = i
		}
	}
	return p
}

// key moves the cursor. done reports that the menu closed; name is empty when
// it closed without a selection.
func (p *picker) key(k string) (name string, done bool) {
	switch k {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) == 0 {
			return "", true
		}
		return p.names[p.cursor], true
	case "esc", "q", "p":
		return "", true
	}
	return "", false
}

func (p *picker) view(theme viz.Theme) string {
	var b strings.Builder
	b.WriteString(viz.Title(theme, "TILINGS") + "\n\n")
	for i, name := range p.names {
		if i == p.cursor {
			b.WriteString(viz.MetricValue.Render("▸ "+name) + "\n")
		} else {
			b.WriteString(viz.Subtle.Render("  "+name) + "\n")
		}
	}
	b.WriteString("\n" + viz.Subtle.Render("↑↓ select  enter apply  esc back") + "\n")
	return b.String()
}
