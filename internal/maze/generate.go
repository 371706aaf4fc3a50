package maze

import "math/rand"

const DefaultWalkers = 10

// walker is one randomized depth-first search. Walkers whose trails touch
// are merged into one group and never connect to each other's cells again.
type walker struct {
	current Coord
	stack   []Coord
	visited map[Coord]struct{}
	group   int
	done    bool
}

func (w *walker) has(c Coord) bool {
	_, ok := w.visited[c]
	return ok
}

// Generator carves a perfect maze with several concurrent walkers.
type Generator struct {
	maze     *Maze
	rng      *rand.Rand
	walkers  []*walker
	finished bool
}

// ClampWalkers bounds n to [1, cells/4].
func ClampWalkers(n, cells int) int {
	limit := cells / 4
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// NewGenerator places walkers on distinct random cells of m.
func NewGenerator(m *Maze, rng *rand.Rand, walkers int) *Generator {
	walkers = ClampWalkers(walkers, m.Len())
	g := &Generator{maze: m, rng: rng}
	for i, idx := range rng.Perm(m.Len())[:walkers] {
		start := m.order[idx].Coord
		g.walkers = append(g.walkers, &walker{
			current: start,
			visited: map[Coord]struct{}{start: {}},
			group:   i,
		})
		m.setHighlight(start, Primary)
	}
	return g
}

func (g *Generator) Finished() bool { return g.finished }
func (g *Generator) Walkers() int   { return len(g.walkers) }

// Step moves every live walker once and reports whether the maze is done.
func (g *Generator) Step() bool {
	if g.finished {
		return true
	}
	live := 0
	for _, w := range g.walkers {
		if w.done {
			continue
		}
		next, ok := g.pick(w)
		if !ok {
			g.backtrack(w)
		} else {
			g.advance(w, next)
		}
		if !w.done {
			live++
		}
	}
	g.finished = live == 0
	return g.finished
}

func (g *Generator) pick(w *walker) (Coord, bool) {
	var candidates []Coord
	for _, n := range g.maze.Neighbors(w.current) {
		if !g.inGroup(w.group, n) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return Coord{}, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

func (g *Generator) inGroup(group int, c Coord) bool {
	for _, o := range g.walkers {
		if o.group == group && o.has(c) {
			return true
		}
	}
	return false
}

func (g *Generator) advance(w *walker, next Coord) {
	for _, o := range g.walkers {
		if o.group != w.group && o.has(next) {
			g.merge(w.group, o.group)
			break
		}
	}
	_ = g.maze.Connect(w.current, next)
	g.maze.setHighlight(w.current, Secondary)
	g.maze.setHighlight(next, Primary)
	w.visited[next] = struct{}{}
	w.stack = append(w.stack, w.current)
	w.current = next
}

func (g *Generator) backtrack(w *walker) {
	g.maze.setHighlight(w.current, Normal)
	if len(w.stack) == 0 {
		w.done = true
		return
	}
	w.current = w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	g.maze.setHighlight(w.current, Primary)
}

func (g *Generator) merge(a, b int) {
	keep, drop := min(a, b), max(a, b)
	for _, w := range g.walkers {
		if w.group == drop {
			w.group = keep
		}
	}
}
