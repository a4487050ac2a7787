// Package trace provides the step model shared by every algorithm generator.
//
// The package defines the snapshot types that a generator emits while it runs
// an algorithm to completion:
//
//   - [Step]: one inspectable snapshot of algorithm progress
//   - [Data]: the algorithm-specific payload carried by a step
//   - [Counters]: monotonic work counters stamped into every step
//   - [Trace]: the immutable, non-empty, ordered sequence of steps
//   - [Builder]: the only way to assemble a Trace
//
// # Example
//
//	b := trace.NewBuilder("linear-search")
//	b.Emit(trace.Step{ID: "init", Description: "start"})
//	b.Compare(1)
//	b.Emit(trace.Step{ID: "compare-0", Compared: []int{0}})
//	tr := b.Build()
//
// # Thread Safety
//
// A Builder is NOT thread-safe. A built Trace is never mutated and may be read
// from any number of goroutines and playback engines at once.
package trace
