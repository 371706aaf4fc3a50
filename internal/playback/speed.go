package playback

import (
	"math"
	"time"
)

const (
	MinSpeed     = 0
	MaxSpeed     = 100
	DefaultSpeed = 50
)

// Timing is the schedule derived from a speed setting.
type Timing struct {
	Delay      time.Duration
	Iterations int
}

// DeriveTiming maps a speed setting to a tick delay and the number of engine
// iterations per tick. 50 is one step per tick with no delay; higher speeds
// batch more steps per tick; lower speeds stretch the delay along a
// (50-speed)^1.5 millisecond curve. Speeds outside [0,100] are clamped.
func DeriveTiming(speed int) Timing {
	speed = clampSpeed(speed)
	switch {
	case speed > DefaultSpeed:
		return Timing{Iterations: speed - (DefaultSpeed - 1)}
	case speed < DefaultSpeed:
		ms := math.Pow(float64(DefaultSpeed-speed), 1.5)
		return Timing{Delay: time.Duration(ms * float64(time.Millisecond)), Iterations: 1}
	default:
		return Timing{Iterations: 1}
	}
}

// DelayMillis returns the delay as fractional milliseconds.
func (t Timing) DelayMillis() float64 {
	return float64(t.Delay) / float64(time.Millisecond)
}

func clampSpeed(speed int) int {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}
