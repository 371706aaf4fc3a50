// Package metrics measures generated mazes.
package metrics

import "github.com/san-kum/tilemaze/internal/maze"

// Metric observes a maze and reports one number about its last observation.
type Metric interface {
	Name() string
	Observe(m *maze.Maze)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of every metric in this package.
func Defaults() []Metric {
	return []Metric{NewCoverage(), NewDeadEnds(), NewLongestPath()}
}

// open returns the neighbours of c with no wall in between.
func open(m *maze.Maze, c maze.Coord) []maze.Coord {
	var out []maze.Coord
	for _, n := range m.Neighbors(c) {
		if m.Connected(c, n) {
			out = append(out, n)
		}
	}
	return out
}

// Coverage is the fraction of cells joined to at least one neighbour.
type Coverage struct {
	value float64
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(m *maze.Maze) {
	if m.Len() == 0 {
		c.value = 0
		return
	}
	c.value = float64(m.OpenCount()) / float64(m.Len())
}

func (c *Coverage) Value() float64 { return c.value }
func (c *Coverage) Reset()         { c.value = 0 }

// DeadEnds is the fraction of cells with exactly one opening.
type DeadEnds struct {
	value float64
}

func NewDeadEnds() *DeadEnds { return &DeadEnds{} }

func (d *DeadEnds) Name() string { return "dead_ends" }

func (d *DeadEnds) Observe(m *maze.Maze) {
	if m.Len() == 0 {
		d.value = 0
		return
	}
	n := 0
	for _, c := range m.Cells() {
		if len(open(m, c.Coord)) == 1 {
			n++
		}
	}
	d.value = float64(n) / float64(m.Len())
}

func (d *DeadEnds) Value() float64 { return d.value }
func (d *DeadEnds) Reset()         { d.value = 0 }

// LongestPath is the number of cells on the longest corridor of the maze.
// On a finished maze, which is a spanning tree, two breadth-first searches
// find it exactly; on a partial maze it measures the largest explored region.
type LongestPath struct {
	value float64
}

func NewLongestPath() *LongestPath { return &LongestPath{} }

func (l *LongestPath) Name() string { return "longest_path" }

func (l *LongestPath) Observe(m *maze.Maze) {
	l.value = 0
	seen := make(map[maze.Coord]bool, m.Len())
	for _, c := range m.Cells() {
		if seen[c.Coord] {
			continue
		}
		far, _ := farthest(m, c.Coord, seen)
		_, dist := farthest(m, far, nil)
		if cells := float64(dist + 1); cells > l.value {
			l.value = cells
		}
	}
}

func (l *LongestPath) Value() float64 { return l.value }
func (l *LongestPath) Reset()         { l.value = 0 }

// farthest runs a breadth-first search from start and returns the last cell
// reached with its distance. Visited cells are added to seen when non-nil.
func farthest(m *maze.Maze, start maze.Coord, seen map[maze.Coord]bool) (maze.Coord, int) {
	dist := map[maze.Coord]int{start: 0}
	queue := []maze.Coord{start}
	last := start
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen != nil {
			seen[c] = true
		}
		last = c
		for _, n := range open(m, c) {
			if _, ok := dist[n]; !ok {
				dist[n] = dist[c] + 1
				queue = append(queue, n)
			}
		}
	}
	return last, dist[last]
}
