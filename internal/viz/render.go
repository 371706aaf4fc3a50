package viz

import (
	"math"

	"github.com/san-kum/tilemaze/internal/maze"
)

// Render draws the standing walls of m and marks walker cells. The maze is
// expected to be laid out on the canvas pixel size.
func Render(c *Canvas, m *maze.Maze) {
	c.Clear()
	for _, w := range m.Walls() {
		c.DrawSegment(w.A.X, w.A.Y, w.B.X, w.B.Y)
	}
	for _, cell := range m.Cells() {
		x, y := int(math.Round(cell.Center.X)), int(math.Round(cell.Center.Y))
		switch cell.Highlight {
		case maze.Primary:
			c.Set(x, y)
			c.Set(x+1, y)
			c.Set(x, y+1)
			c.Set(x+1, y+1)
			c.Mark(x, y, MarkHead)
		case maze.Secondary:
			c.Set(x, y)
			c.Mark(x, y, MarkTrail)
		}
	}
}

// Surface returns the pixel size a maze needs to fill a w x h character canvas.
func Surface(w, h int) (int, int) {
	return w * 2, h * 4
}
