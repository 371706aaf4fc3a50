package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Mark tags a character cell with a highlight colour.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkTrail
	MarkHead
)

// Canvas is a braille pixel grid. Every character holds 2x4 sub-pixels, so
// a Width x Height canvas draws on (Width*2) x (Height*4) pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Marks         [][]Mark
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Marks:  make([][]Mark, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Marks[i] = make([]Mark, w)
	}
	c.Clear()
	return c
}

// PixelSize returns the drawable area in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) isSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Mark tags the character containing sub-pixel (x, y). A head mark is never
// downgraded to a trail mark.
func (c *Canvas) Mark(x, y int, m Mark) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	if m > c.Marks[row][col] {
		c.Marks[row][col] = m
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Marks[i][j] = MarkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegment draws a line between fractional pixel positions. Endpoints on
// the far edge of the canvas are pulled back inside.
func (c *Canvas) DrawSegment(x0, y0, x1, y1 float64) {
	w, h := c.PixelSize()
	c.DrawLine(pixel(x0, w), pixel(y0, h), pixel(x1, w), pixel(y1, h))
}

func pixel(v float64, size int) int {
	p := int(math.Round(v))
	if p >= size {
		p = size - 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Styled renders the canvas, colouring marked characters with the theme.
func (c *Canvas) Styled(t Theme) string {
	wall := lipgloss.NewStyle().Foreground(t.Wall)
	trail := lipgloss.NewStyle().Foreground(t.Secondary)
	head := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Marks[i][j] == c.Marks[i][start] {
				continue
			}
			run := string(row[start:j])
			switch c.Marks[i][start] {
			case MarkHead:
				b.WriteString(head.Render(run))
			case MarkTrail:
				b.WriteString(trail.Render(run))
			default:
				b.WriteString(wall.Render(run))
			}
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
