package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/viz"
)

// MazeToSVG draws the standing walls of m as one stroked path, with walker
// heads and trails as dots. The viewBox is the maze surface.
func MazeToSVG(m *maze.Maze, theme viz.Theme) string {
	if m == nil {
		return ""
	}
	width, height := math.Ceil(m.Width), math.Ceil(m.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Muted)

	walls := m.Walls()
	if len(walls) > 0 {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" stroke-linecap="round" d="`, theme.Wall)
		for i, w := range walls {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "M%.2f,%.2f L%.2f,%.2f", w.A.X, w.A.Y, w.B.X, w.B.Y)
		}
		sb.WriteString("\"/>\n")
	}

	for _, c := range m.Cells() {
		var fill string
		r := m.Scale * 0.15
		switch c.Highlight {
		case maze.Primary:
			fill, r = string(theme.Primary), m.Scale*0.3
		case maze.Secondary:
			fill = string(theme.Secondary)
		default:
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, c.Center.X, c.Center.Y, r, fill)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Braille dot-to-bit mapping
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a braille canvas to dots, each scale units apart. Marked
// characters take the theme's walker colours.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4
	dotRadius := scale * 0.4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Muted)

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := r - 0x2800

			fill := theme.Wall
			switch canvas.Marks[row][col] {
			case viz.MarkHead:
				fill = theme.Primary
			case viz.MarkTrail:
				fill = theme.Secondary
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
