package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTiling indicates a tiling name that is not in the loaded catalog.
	ErrUnknownTiling = errors.New("playback: tiling not in catalog")

	// ErrSpeedRange indicates a speed setting outside [MinSpeed, MaxSpeed].
	ErrSpeedRange = errors.New("playback: speed out of range")

	// ErrInvalidCatalog indicates the engine offered an empty or malformed tiling list.
	ErrInvalidCatalog = errors.New("playback: invalid tiling catalog")

	// ErrInvalidState indicates an operation or transition not allowed in the current state.
	ErrInvalidState = errors.New("playback: operation not allowed in current state")

	// ErrReentrantTick indicates a tick fired while a previous tick was still running.
	ErrReentrantTick = errors.New("playback: tick re-entered")

	// ErrClosed indicates the controller was used after Close.
	ErrClosed = errors.New("playback: controller closed")
)

// EngineFault wraps a failure reported by the engine. It ends the current run.
type EngineFault struct {
	Op  string
	Err error
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("playback: engine %s: %v", e.Op, e.Err)
}

func (e *EngineFault) Unwrap() error {
	return e.Err
}

// StateError reports an operation attempted from a state that does not allow it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("playback: %s not allowed while %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
