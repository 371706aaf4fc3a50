// Package playback turns an engine's discrete "advance by N steps" call into
// a continuous, speed-adjustable, pausable animation.
//
// The pieces, leaves first:
//
//   - [DeriveTiming]: maps a speed setting in [0,100] to a tick delay and a
//     number of engine iterations per tick
//   - [Engine]: the generation engine the animation drives
//   - [Controller]: Idle/Running/Finished state machine owning the timer and
//     the engine session handle
//   - [Router]: validates tiling/scale/rotation changes and forwards them
//   - [Catalog]: the tiling names the engine offered at startup
//
// # Example
//
//	sess, err := playback.Open(engine, schedule.NewManual(), surface, playback.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer sess.Close()
//	sess.Controller.Start()
//
// # Thread Safety
//
// A Controller is not safe for concurrent use. Every call, including the
// tick callbacks, must come from the scheduler's timeline.
package playback
