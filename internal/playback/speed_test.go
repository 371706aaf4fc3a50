package playback

import (
	"math"
	"testing"
	"time"
)

func TestDeriveTiming(t *testing.T) {
	tests := []struct {
		name       string
		speed      int
		delayMs    float64
		iterations int
	}{
		{"baseline", 50, 0, 1},
		{"just above baseline", 51, 0, 2},
		{"maximum", 100, 0, 51},
		{"just below baseline", 49, 1, 1},
		{"slow", 25, 125, 1},
		{"minimum", 0, math.Pow(50, 1.5), 1},
		{"clamped high", 150, 0, 51},
		{"clamped low", -10, math.Pow(50, 1.5), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTiming(tt.speed)
			if got.Iterations != tt.iterations {
				t.Errorf("iterations = %d, want %d", got.Iterations, tt.iterations)
			}
			if math.Abs(got.DelayMillis()-tt.delayMs) > 1e-3 {
				t.Errorf("delay = %.4fms, want %.4fms", got.DelayMillis(), tt.delayMs)
			}
		})
	}
}

func TestDeriveTiming_Minimum(t *testing.T) {
	got := DeriveTiming(0)
	if math.Abs(got.DelayMillis()-353.553) > 1e-3 {
		t.Errorf("delay at speed 0 = %.4fms, want ~353.553ms", got.DelayMillis())
	}
}

func TestDeriveTiming_Monotonic(t *testing.T) {
	for s := 0; s < 50; s++ {
		if DeriveTiming(s).Delay < DeriveTiming(s+1).Delay {
			t.Errorf("delay(%d) < delay(%d)", s, s+1)
		}
	}
	for s := 50; s < 100; s++ {
		if DeriveTiming(s).Iterations > DeriveTiming(s+1).Iterations {
			t.Errorf("iterations(%d) > iterations(%d)", s, s+1)
		}
	}
}

func TestDeriveTiming_Bounds(t *testing.T) {
	for s := MinSpeed; s <= MaxSpeed; s++ {
		got := DeriveTiming(s)
		if got.Delay < 0 {
			t.Errorf("speed %d: negative delay %v", s, got.Delay)
		}
		if got.Iterations < 1 {
			t.Errorf("speed %d: iterations %d < 1", s, got.Iterations)
		}
		if s >= DefaultSpeed && got.Delay != time.Duration(0) {
			t.Errorf("speed %d: want zero delay, got %v", s, got.Delay)
		}
	}
}
