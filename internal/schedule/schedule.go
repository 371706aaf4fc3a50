package schedule

import (
	"errors"
	"time"
)

var (
	// ErrReentrant indicates the timeline was driven from inside one of its callbacks.
	ErrReentrant = errors.New("schedule: timeline driven from inside a callback")
)

// Func is a repeating callback. A non-nil error cancels the timer.
type Func func() error

// Timer is a handle on one installed callback.
type Timer interface {
	Cancel()
	Active() bool
}

// Scheduler installs repeating callbacks on its timeline.
type Scheduler interface {
	Every(period time.Duration, fn Func) Timer
}
