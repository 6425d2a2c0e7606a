// Package playback drives a cursor through an operation log at a
// controllable pace.
//
// A [Scheduler] owns one snapshot, one selected algorithm, at most one live
// log and at most one pending tick. Its mutators are:
//
//   - [Scheduler.Play]: start or resume timed advancement
//   - [Scheduler.Pause]: cancel the pending tick, keep the cursor
//   - [Scheduler.Step]: pause, then apply exactly one operation
//   - [Scheduler.Reset]: pause, regenerate the log, rewind to 0
//   - [Scheduler.SetSnapshot] / [Scheduler.SelectAlgorithm]: invalidate the log
//
// Ticks are delivered through a [Clock]. Every cancellation bumps a
// generation counter, so a tick that was already in flight when it was
// cancelled is discarded instead of applying a stale operation.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Observers are invoked with the
// scheduler lock held and must not call back into the Scheduler.
package playback
