// Package schedule provides the single cooperative timeline that drives
// repeating callbacks.
//
// A [Scheduler] installs repeating callbacks and hands back a [Timer] that
// cancels them. Implementations guarantee that:
//
//   - every callback of one scheduler runs on the same timeline, one at a time
//   - a timer is re-armed only after its callback returned, so a callback is
//     never re-entered
//   - after [Timer.Cancel] the callback is never invoked again, including
//     when the callback cancels its own timer
//   - a callback returning an error cancels its timer and the error is
//     returned from the call that drove the timeline
//
// [Manual] runs on a virtual clock and is deterministic; [Loop] runs on the
// wall clock in a single goroutine.
package schedule
