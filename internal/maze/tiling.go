package maze

import "math"

// Coord addresses one cell of a tiling lattice.
type Coord struct {
	X, Y int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y}
}

// Point is a position in surface space, or in tile units before placement.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point     { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Rotate turns p about the origin by deg degrees.
func (p Point) Rotate(deg float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Point{cos*p.X - sin*p.Y, sin*p.X + cos*p.Y}
}

// Shape is one cell's polygon in tile units. Sides[i] is the lattice offset
// of the neighbour across the edge from Corners[i] to Corners[i+1].
type Shape struct {
	Corners []Point
	Sides   []Coord
}

// Tiling describes a periodic tiling of the plane.
type Tiling struct {
	Name string

	// center maps a lattice cell to its centre in tile units.
	center func(Coord) Point
	// shape returns the polygon at c, or false if c is not a cell.
	shape func(Coord) (Shape, bool)
}

func (t *Tiling) Center(c Coord) Point { return t.center(c) }

func (t *Tiling) Shape(c Coord) (Shape, bool) { return t.shape(c) }

var (
	sqrt3 = math.Sqrt(3)

	// octagon side length for unit width
	octSide = 1 / (1 + math.Sqrt2)
)

var squareShape = Shape{
	Corners: []Point{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}},
	Sides:   []Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
}

var hexShape = Shape{
	Corners: []Point{
		{-0.5, -sqrt3 / 2}, {0.5, -sqrt3 / 2}, {1, 0},
		{0.5, sqrt3 / 2}, {-0.5, sqrt3 / 2}, {-1, 0},
	},
	Sides: []Coord{{0, -1}, {1, -1}, {1, 0}, {0, 1}, {-1, 1}, {-1, 0}},
}

var (
	triHeight = sqrt3 / 2

	triUp = Shape{
		Corners: []Point{{-0.5, triHeight / 2}, {0, -triHeight / 2}, {0.5, triHeight / 2}},
		Sides:   []Coord{{-1, 0}, {1, 0}, {0, 1}},
	}
	triDown = Shape{
		Corners: []Point{{-0.5, -triHeight / 2}, {0.5, -triHeight / 2}, {0, triHeight / 2}},
		Sides:   []Coord{{0, -1}, {1, 0}, {-1, 0}},
	}
)

var (
	octagonShape = Shape{
		Corners: []Point{
			{-octSide / 2, -0.5}, {octSide / 2, -0.5},
			{0.5, -octSide / 2}, {0.5, octSide / 2},
			{octSide / 2, 0.5}, {-octSide / 2, 0.5},
			{-0.5, octSide / 2}, {-0.5, -octSide / 2},
		},
		Sides: []Coord{{0, -2}, {1, -1}, {2, 0}, {1, 1}, {0, 2}, {-1, 1}, {-2, 0}, {-1, -1}},
	}

	// diamond sits in the gap between four octagons
	diamondHalf  = (1 - octSide) / 2
	diamondShape = Shape{
		Corners: []Point{{0, -diamondHalf}, {diamondHalf, 0}, {0, diamondHalf}, {-diamondHalf, 0}},
		Sides:   []Coord{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}},
	}
)

func even(n int) bool { return n%2 == 0 }

var (
	Square = &Tiling{
		Name:   "Square",
		center: func(c Coord) Point { return Point{float64(c.X), float64(c.Y)} },
		shape:  func(Coord) (Shape, bool) { return squareShape, true },
	}

	Hexagon = &Tiling{
		Name: "Hexagon",
		center: func(c Coord) Point {
			return Point{1.5 * float64(c.X), sqrt3*float64(c.Y) + sqrt3/2*float64(c.X)}
		},
		shape: func(Coord) (Shape, bool) { return hexShape, true },
	}

	Triangular = &Tiling{
		Name:   "Triangular",
		center: func(c Coord) Point { return Point{0.5 * float64(c.X), triHeight * float64(c.Y)} },
		shape: func(c Coord) (Shape, bool) {
			if even(c.X + c.Y) {
				return triUp, true
			}
			return triDown, true
		},
	}

	// TruncatedSquare uses doubled coordinates: octagons where both are
	// even, squares where both are odd.
	TruncatedSquare = &Tiling{
		Name:   "Truncated Square",
		center: func(c Coord) Point { return Point{float64(c.X) / 2, float64(c.Y) / 2} },
		shape: func(c Coord) (Shape, bool) {
			switch ex, ey := even(c.X), even(c.Y); {
			case ex && ey:
				return octagonShape, true
			case !ex && !ey:
				return diamondShape, true
			}
			return Shape{}, false
		},
	}
)

// Tilings lists the built-in tilings; the first is the default.
var Tilings = []*Tiling{Square, Hexagon, Triangular, TruncatedSquare}

func LookupTiling(name string) (*Tiling, bool) {
	for _, t := range Tilings {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func TilingNames() []string {
	names := make([]string, len(Tilings))
	for i, t := range Tilings {
		names[i] = t.Name
	}
	return names
}
