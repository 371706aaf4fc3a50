package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/tilemaze/internal/playback"
)

var (
	ErrUnknownTiling = errors.New("maze: unknown tiling")
	ErrHandle        = errors.New("maze: handle does not belong to this engine")
)

type Config struct {
	// Walkers is the number of concurrent walkers; 0 means DefaultWalkers.
	Walkers int
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64
}

// Engine is the in-process generation engine behind the animation.
type Engine struct {
	cfg Config
}

var _ playback.Engine = (*Engine)(nil)

func New(cfg Config) *Engine {
	if cfg.Walkers <= 0 {
		cfg.Walkers = DefaultWalkers
	}
	return &Engine{cfg: cfg}
}

// Session is the state behind one playback.Handle.
type Session struct {
	engine   *Engine
	surface  playback.Surface
	tiling   *Tiling
	scale    int
	rotation int
	rng      *rand.Rand
	maze     *Maze
	gen      *Generator
	steps    int
}

func (s *Session) Maze() *Maze  { return s.maze }
func (s *Session) Walkers() int { return s.gen.Walkers() }

func (s *Session) rebuild(t *Tiling, scale, rotation int) error {
	m, err := NewMaze(t, float64(s.surface.Width), float64(s.surface.Height), float64(scale), float64(rotation))
	if err != nil {
		return err
	}
	s.tiling, s.scale, s.rotation, s.maze = t, scale, rotation, m
	s.restart()
	return nil
}

func (s *Session) restart() {
	s.maze.Clear()
	s.gen = NewGenerator(s.maze, s.rng, s.engine.cfg.Walkers)
	s.steps = 0
}

func (e *Engine) Initialize(surface playback.Surface, scale, rotation int) (playback.Handle, error) {
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		engine:  e,
		surface: surface,
		rng:     rand.New(rand.NewSource(seed)),
	}
	if err := s.rebuild(Tilings[0], scale, rotation); err != nil {
		return nil, err
	}
	return s, nil
}

func (e *Engine) ListTilings() []string {
	return TilingNames()
}

// Session resolves a handle issued by this engine.
func (e *Engine) Session(h playback.Handle) (*Session, error) {
	s, ok := h.(*Session)
	if !ok || s == nil || s.engine != e {
		return nil, fmt.Errorf("%w: %T", ErrHandle, h)
	}
	return s, nil
}

func (e *Engine) SetTiling(h playback.Handle, name string) error {
	s, err := e.Session(h)
	if err != nil {
		return err
	}
	t, ok := LookupTiling(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTiling, name)
	}
	return s.rebuild(t, s.scale, s.rotation)
}

func (e *Engine) Step(h playback.Handle, iterations int) (bool, error) {
	s, err := e.Session(h)
	if err != nil {
		return false, err
	}
	for i := 0; i < iterations && !s.gen.Finished(); i++ {
		s.gen.Step()
		s.steps++
	}
	return s.gen.Finished(), nil
}

func (e *Engine) SetScale(h playback.Handle, value int) error {
	s, err := e.Session(h)
	if err != nil {
		return err
	}
	return s.rebuild(s.tiling, value, s.rotation)
}

func (e *Engine) SetRotation(h playback.Handle, value int) error {
	s, err := e.Session(h)
	if err != nil {
		return err
	}
	return s.rebuild(s.tiling, s.scale, value)
}

func (e *Engine) Reset(h playback.Handle) error {
	s, err := e.Session(h)
	if err != nil {
		return err
	}
	s.restart()
	return nil
}

// Progress reports how many cells are joined to the maze out of the total.
func (e *Engine) Progress(h playback.Handle) (connected, total int, err error) {
	s, err := e.Session(h)
	if err != nil {
		return 0, 0, err
	}
	return s.maze.OpenCount(), s.maze.Len(), nil
}
