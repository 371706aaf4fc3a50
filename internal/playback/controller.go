package playback

import (
	"fmt"
	"io"
	"log"

	"github.com/san-kum/tilemaze/internal/schedule"
)

const (
	DefaultScale    = 15
	DefaultRotation = 0
)

type State int

const (
	Idle State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type event int

const (
	evStart event = iota
	evStop
	evComplete
	evFault
	evReset
	evRetile
	evReinit
)

var eventNames = [...]string{"start", "stop", "complete", "fault", "reset", "retile", "reinit"}

func (e event) String() string { return eventNames[e] }

// transitions is the complete edge set of the controller; an edge missing
// here is rejected with a StateError. evComplete is taken by the tick that
// saw the engine finish, after it cancelled its own timer. Running has no
// evRetile edge: a tiling change stops the run first.
var transitions = map[State]map[event]State{
	Idle: {
		evStart:  Running,
		evFault:  Idle,
		evReset:  Idle,
		evRetile: Idle,
		evReinit: Idle,
	},
	Running: {
		evStart:    Running,
		evStop:     Idle,
		evComplete: Finished,
		evFault:    Idle,
		evReset:    Idle,
		evReinit:   Idle,
	},
	Finished: {
		evStart:  Running,
		evFault:  Idle,
		evReset:  Idle,
		evRetile: Idle,
		evReinit: Idle,
	},
}

// Options configures a Controller. Start from DefaultOptions; the zero
// value means speed 0 and scale 0.
type Options struct {
	Speed    int
	Scale    int
	Rotation int
	Logger   *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Speed:    DefaultSpeed,
		Scale:    DefaultScale,
		Rotation: DefaultRotation,
	}
}

// Controls reports which UI affordances are usable in the current state.
type Controls struct {
	Tiling   bool
	Step     bool
	Run      bool
	Stop     bool
	Scale    bool
	Rotation bool
}

// Status is a snapshot of the controller.
type Status struct {
	State    State
	Speed    int
	Timing   Timing
	Scale    int
	Rotation int
	Tiling   string
	Surface  Surface
	Ticks    int
	Steps    int
}

// Controller owns one engine session, its timer and its run state.
type Controller struct {
	engine    Engine
	scheduler schedule.Scheduler
	logger    *log.Logger

	surface Surface
	handle  Handle
	state   State
	timer   schedule.Timer
	timing  Timing
	ticking bool
	closed  bool

	speed      int
	scale      int
	rotation   int
	tiling     string
	baseTiling string

	ticks int
	steps int
}

// NewController initializes one engine session on surface.
func NewController(engine Engine, sched schedule.Scheduler, surface Surface, opts Options) (*Controller, error) {
	if opts.Speed < MinSpeed || opts.Speed > MaxSpeed {
		return nil, fmt.Errorf("%w: %d", ErrSpeedRange, opts.Speed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	h, err := engine.Initialize(surface, opts.Scale, opts.Rotation)
	if err != nil {
		return nil, &EngineFault{Op: "initialize", Err: err}
	}

	return &Controller{
		engine:    engine,
		scheduler: sched,
		logger:    logger,
		surface:   surface,
		handle:    h,
		state:     Idle,
		timing:    DeriveTiming(opts.Speed),
		speed:     opts.Speed,
		scale:     opts.Scale,
		rotation:  opts.Rotation,
	}, nil
}

func (c *Controller) State() State    { return c.state }
func (c *Controller) Handle() Handle  { return c.handle }
func (c *Controller) Speed() int      { return c.speed }
func (c *Controller) Scheduled() bool { return c.timer != nil && c.timer.Active() }
func (c *Controller) Tiling() string  { return c.tiling }

func (c *Controller) Status() Status {
	return Status{
		State:    c.state,
		Speed:    c.speed,
		Timing:   DeriveTiming(c.speed),
		Scale:    c.scale,
		Rotation: c.rotation,
		Tiling:   c.tiling,
		Surface:  c.surface,
		Ticks:    c.ticks,
		Steps:    c.steps,
	}
}

func (c *Controller) Controls() Controls {
	running := c.state == Running
	return Controls{
		Tiling:   !running,
		Step:     c.state == Idle,
		Run:      !running,
		Stop:     running,
		Scale:    !running,
		Rotation: !running,
	}
}

// Start begins (or re-times) continuous stepping. From Finished the engine
// is reset first.
func (c *Controller) Start() error {
	if c.closed {
		return ErrClosed
	}
	if c.state == Finished {
		if err := c.engine.Reset(c.handle); err != nil {
			return c.fault("reset", err)
		}
		if err := c.transition(evReset); err != nil {
			return err
		}
	}

	c.timing = DeriveTiming(c.speed)
	c.cancelTimer()
	if err := c.transition(evStart); err != nil {
		return err
	}
	c.timer = c.scheduler.Every(c.timing.Delay, c.tick)
	c.logger.Printf("playback: scheduled delay=%s iterations=%d", c.timing.Delay, c.timing.Iterations)
	return nil
}

// tick is the timer callback. The finishing tick cancels its own timer and
// takes the evComplete edge as its last action.
func (c *Controller) tick() error {
	if c.ticking {
		return ErrReentrantTick
	}
	if c.state != Running {
		return &StateError{Op: "tick", State: c.state}
	}

	c.ticking = true
	done, err := c.engine.Step(c.handle, c.timing.Iterations)
	c.ticking = false
	if err != nil {
		return c.fault("step", err)
	}
	c.ticks++
	c.steps += c.timing.Iterations
	if done {
		c.cancelTimer()
		return c.transition(evComplete)
	}
	return nil
}

// Stop cancels continuous stepping. It never calls the engine, and leaves a
// Finished controller Finished.
func (c *Controller) Stop() {
	if c.closed {
		return
	}
	c.cancelTimer()
	if c.state == Running {
		_ = c.transition(evStop)
	}
}

// SingleStep advances the engine by one iteration. It is only allowed while
// Idle, and it ignores the engine's completion flag: a single step never
// moves the controller to Finished.
func (c *Controller) SingleStep() error {
	if c.closed {
		return ErrClosed
	}
	if c.state != Idle {
		return &StateError{Op: "single step", State: c.state}
	}
	if _, err := c.engine.Step(c.handle, 1); err != nil {
		return c.fault("step", err)
	}
	c.steps++
	return nil
}

// ChangeSpeed stores a new speed. A running animation is rescheduled with
// the new timing, without resetting the engine.
func (c *Controller) ChangeSpeed(speed int) error {
	if c.closed {
		return ErrClosed
	}
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("%w: %d", ErrSpeedRange, speed)
	}
	c.speed = speed
	if c.state == Running {
		return c.Start()
	}
	return nil
}

// ChangeTiling switches the engine to another tiling, stopping a run first.
// The engine restarts generation, so the controller ends up Idle. Callers
// validate name against the catalog (see Router.SetTiling).
func (c *Controller) ChangeTiling(name string) error {
	if c.closed {
		return ErrClosed
	}
	if c.state == Running {
		c.Stop()
	}
	if err := c.engine.SetTiling(c.handle, name); err != nil {
		return c.fault("set tiling", err)
	}
	c.tiling = name
	return c.transition(evRetile)
}

// Reset restarts generation in place and leaves the controller Idle.
func (c *Controller) Reset() error {
	if c.closed {
		return ErrClosed
	}
	c.cancelTimer()
	if err := c.engine.Reset(c.handle); err != nil {
		return c.fault("reset", err)
	}
	return c.transition(evReset)
}

// Reinitialize replaces the session handle with a fresh one on surface,
// keeping scale, rotation and the selected tiling.
func (c *Controller) Reinitialize(surface Surface) error {
	if c.closed {
		return ErrClosed
	}
	c.cancelTimer()
	h, err := c.engine.Initialize(surface, c.scale, c.rotation)
	if err != nil {
		return c.fault("initialize", err)
	}
	c.handle, c.surface = h, surface
	if c.tiling != "" && c.tiling != c.baseTiling {
		if err := c.engine.SetTiling(h, c.tiling); err != nil {
			c.tiling = c.baseTiling
			return c.fault("set tiling", err)
		}
	}
	return c.transition(evReinit)
}

// Close cancels the timer. Later calls return ErrClosed.
func (c *Controller) Close() {
	c.cancelTimer()
	c.closed = true
}

func (c *Controller) setScale(value int) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.engine.SetScale(c.handle, value); err != nil {
		return c.fault("set scale", err)
	}
	c.scale = value
	return nil
}

func (c *Controller) setRotation(value int) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.engine.SetRotation(c.handle, value); err != nil {
		return c.fault("set rotation", err)
	}
	c.rotation = value
	return nil
}

// adoptTiling records the tiling the engine is already on after initialization.
func (c *Controller) adoptTiling(name string) {
	c.tiling = name
	c.baseTiling = name
}

func (c *Controller) transition(ev event) error {
	next, ok := transitions[c.state][ev]
	if !ok {
		return &StateError{Op: ev.String(), State: c.state}
	}
	if next != c.state {
		c.logger.Printf("playback: %s -> %s on %s", c.state, next, ev)
	}
	c.state = next
	return nil
}

// fault ends the current run after an engine failure.
func (c *Controller) fault(op string, err error) error {
	c.cancelTimer()
	_ = c.transition(evFault)
	c.logger.Printf("playback: engine %s failed: %v", op, err)
	return &EngineFault{Op: op, Err: err}
}

func (c *Controller) cancelTimer() {
	if c.timer != nil {
		c.timer.Cancel()
		c.timer = nil
	}
}
