package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/tilemaze/internal/maze"
)

// corridor builds a 3x3 square maze centred on the origin and opens a path
// through the given cells.
func corridor(t *testing.T, path ...maze.Coord) *maze.Maze {
	t.Helper()
	m, err := maze.NewMaze(maze.Square, 30, 30, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(path); i++ {
		if err := m.Connect(path[i-1], path[i]); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestMetrics_Closed(t *testing.T) {
	m := corridor(t)
	for _, metric := range Defaults() {
		metric.Observe(m)
		want := 0.0
		if metric.Name() == "longest_path" {
			want = 1
		}
		if metric.Value() != want {
			t.Errorf("%s = %f on a closed maze, want %f", metric.Name(), metric.Value(), want)
		}
	}
}

func TestMetrics_Corridor(t *testing.T) {
	m := corridor(t, maze.Coord{X: -1}, maze.Coord{}, maze.Coord{X: 1}, maze.Coord{X: 1, Y: 1})

	tests := []struct {
		metric Metric
		want   float64
	}{
		{NewCoverage(), 4.0 / 9},
		{NewDeadEnds(), 2.0 / 9},
		{NewLongestPath(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.metric.Name(), func(t *testing.T) {
			tt.metric.Observe(m)
			if math.Abs(tt.metric.Value()-tt.want) > 1e-9 {
				t.Errorf("%s = %f, want %f", tt.metric.Name(), tt.metric.Value(), tt.want)
			}
			tt.metric.Reset()
			if tt.metric.Value() != 0 {
				t.Error("reset did not clear the value")
			}
		})
	}
}

func TestMetrics_Generated(t *testing.T) {
	m, err := maze.NewMaze(maze.Hexagon, 200, 120, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	g := maze.NewGenerator(m, rand.New(rand.NewSource(5)), 4)
	for i := 0; i < 100000 && !g.Step(); i++ {
	}

	cov := NewCoverage()
	cov.Observe(m)
	if cov.Value() != 1 {
		t.Errorf("coverage = %f on a finished maze", cov.Value())
	}

	lp := NewLongestPath()
	lp.Observe(m)
	if lp.Value() < 2 || lp.Value() > float64(m.Len()) {
		t.Errorf("longest path %f outside [2, %d]", lp.Value(), m.Len())
	}

	de := NewDeadEnds()
	de.Observe(m)
	if de.Value() <= 0 || de.Value() >= 1 {
		t.Errorf("dead ends = %f", de.Value())
	}
}
