package maze

import (
	"errors"
	"fmt"
)

var (
	ErrScale = errors.New("maze: scale must be positive")
	ErrEmpty = errors.New("maze: no cell fits the surface")
)

// Highlight marks cells a generator is working on.
type Highlight int

const (
	Normal Highlight = iota
	Primary
	Secondary
)

func (h Highlight) String() string {
	switch h {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "normal"
}

// Cell is one placed polygon. Walls[i] closes the edge from Corners[i] to
// Corners[i+1].
type Cell struct {
	Coord     Coord
	Center    Point
	Corners   []Point
	Walls     []bool
	Highlight Highlight

	sides []Coord
}

// Open reports whether any wall of the cell has been removed.
func (c *Cell) Open() bool {
	for _, w := range c.Walls {
		if !w {
			return true
		}
	}
	return false
}

// Segment is a wall edge in surface space.
type Segment struct {
	A, B Point
}

// Maze is the set of tiling cells that fit a surface, with their walls.
type Maze struct {
	Tiling   *Tiling
	Width    float64
	Height   float64
	Scale    float64
	Rotation float64

	cells map[Coord]*Cell
	order []*Cell
}

// NewMaze places every cell of t whose rotated and scaled polygon fits inside a
// width x height surface, flooding outwards from the cell at the centre.
func NewMaze(t *Tiling, width, height, scale, rotation float64) (*Maze, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrScale, scale)
	}
	m := &Maze{
		Tiling:   t,
		Width:    width,
		Height:   height,
		Scale:    scale,
		Rotation: rotation,
		cells:    make(map[Coord]*Cell),
	}

	origin := Coord{}
	seen := map[Coord]bool{origin: true}
	queue := []Coord{origin}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		cell, ok := m.place(c)
		if !ok {
			continue
		}
		m.cells[c] = cell
		m.order = append(m.order, cell)
		for _, side := range cell.sides {
			if !seen[side] {
				seen[side] = true
				queue = append(queue, side)
			}
		}
	}

	if len(m.order) == 0 {
		return nil, fmt.Errorf("%w: %s at scale %g on %gx%g", ErrEmpty, t.Name, scale, width, height)
	}
	return m, nil
}

const fitEpsilon = 1e-9

func (m *Maze) place(c Coord) (*Cell, bool) {
	shape, ok := m.Tiling.Shape(c)
	if !ok {
		return nil, false
	}
	mid := Point{m.Width / 2, m.Height / 2}
	center := mid.Add(m.Tiling.Center(c).Scale(m.Scale).Rotate(m.Rotation))

	corners := make([]Point, len(shape.Corners))
	for i, p := range shape.Corners {
		q := center.Add(p.Scale(m.Scale).Rotate(m.Rotation))
		if q.X < -fitEpsilon || q.Y < -fitEpsilon || q.X > m.Width+fitEpsilon || q.Y > m.Height+fitEpsilon {
			return nil, false
		}
		corners[i] = q
	}

	sides := make([]Coord, len(shape.Sides))
	walls := make([]bool, len(shape.Sides))
	for i, off := range shape.Sides {
		sides[i] = c.Add(off)
		walls[i] = true
	}
	return &Cell{Coord: c, Center: center, Corners: corners, Walls: walls, sides: sides}, true
}

func (m *Maze) Len() int { return len(m.order) }

// Cells returns the cells in placement order.
func (m *Maze) Cells() []*Cell {
	out := make([]*Cell, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Maze) Cell(c Coord) (*Cell, bool) {
	cell, ok := m.cells[c]
	return cell, ok
}

// Neighbors returns the in-maze neighbours of c in side order.
func (m *Maze) Neighbors(c Coord) []Coord {
	cell, ok := m.cells[c]
	if !ok {
		return nil
	}
	var out []Coord
	for _, n := range cell.sides {
		if _, ok := m.cells[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (m *Maze) sideOf(a, b Coord) int {
	cell, ok := m.cells[a]
	if !ok {
		return -1
	}
	for i, n := range cell.sides {
		if n == b {
			return i
		}
	}
	return -1
}

// Connect removes the wall between two adjacent cells.
func (m *Maze) Connect(a, b Coord) error {
	i, j := m.sideOf(a, b), m.sideOf(b, a)
	if i < 0 || j < 0 {
		return fmt.Errorf("maze: %v is not adjacent to %v", a, b)
	}
	m.cells[a].Walls[i] = false
	m.cells[b].Walls[j] = false
	return nil
}

// Connected reports whether a and b are adjacent with no wall between them.
func (m *Maze) Connected(a, b Coord) bool {
	i := m.sideOf(a, b)
	if i < 0 {
		return false
	}
	if _, ok := m.cells[b]; !ok {
		return false
	}
	return !m.cells[a].Walls[i]
}

// OpenCount returns the number of cells joined to at least one neighbour.
func (m *Maze) OpenCount() int {
	n := 0
	for _, c := range m.order {
		if c.Open() {
			n++
		}
	}
	return n
}

// Walls returns each standing wall once, boundary walls included.
func (m *Maze) Walls() []Segment {
	var out []Segment
	for _, c := range m.order {
		for i, wall := range c.Walls {
			if !wall {
				continue
			}
			n := c.sides[i]
			if _, inside := m.cells[n]; inside && less(n, c.Coord) {
				continue
			}
			out = append(out, Segment{c.Corners[i], c.Corners[(i+1)%len(c.Corners)]})
		}
	}
	return out
}

func less(a, b Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

func (m *Maze) setHighlight(c Coord, h Highlight) {
	if cell, ok := m.cells[c]; ok {
		cell.Highlight = h
	}
}

// Clear restores every wall and drops all highlights.
func (m *Maze) Clear() {
	for _, c := range m.order {
		for i := range c.Walls {
			c.Walls[i] = true
		}
		c.Highlight = Normal
	}
}
