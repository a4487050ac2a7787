// Package playback replays a [trace.Trace] step by step.
//
// An [Engine] is bound to one trace and moves a cursor over it in response to
// commands (Play, Pause, Reset, StepForward, StepBackward, GoToStep, SetSpeed)
// and to its own auto-advance tick. The main types are:
//
//   - [Engine]: the playback state machine
//   - [Snapshot]: a consistent copy of the engine state and current step
//   - [Clock]: schedules ticks; [RealClock] for wall time, [ManualClock] for
//     deterministic replay and tests
//   - [Observer]: hooks for commands, applied ticks and dropped stale ticks
//
// # Ticks
//
// At most one tick is pending per engine. Every command that changes the
// cursor or the animation state stops the pending timer and bumps a
// generation counter while holding the engine lock, so a tick that was
// already on its way is recognized as stale and dropped.
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Observers are called after
// the engine lock is released, from the goroutine that issued the command or
// from the clock's goroutine for ticks.
package playback
