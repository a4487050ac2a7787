package trace

import (
	"encoding/json"
	"fmt"
)

// Trace is the fully materialized, ordered sequence of steps produced by one
// generator run. It always holds at least one step.
type Trace struct {
	algorithm string
	steps     []Step
}

func (t *Trace) Algorithm() string { return t.algorithm }
func (t *Trace) Len() int          { return len(t.steps) }
func (t *Trace) First() Step       { return t.steps[0] }
func (t *Trace) Last() Step        { return t.steps[len(t.steps)-1] }

// At returns step i. It panics when i is out of range, like a slice index.
func (t *Trace) At(i int) Step { return t.steps[i] }

// Lookup returns step i or ErrIndexOutOfRange.
func (t *Trace) Lookup(i int) (Step, error) {
	if i < 0 || i >= len(t.steps) {
		return Step{}, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, len(t.steps)-1)
	}
	return t.steps[i], nil
}

// Steps returns a copy of the step list. The steps themselves share backing
// arrays with the trace and must not be modified.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

type traceJSON struct {
	Algorithm string `json:"algorithm"`
	Steps     []Step `json:"steps"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceJSON{Algorithm: t.algorithm, Steps: t.steps})
}

// Builder accumulates steps and owns the running counters. Counters can only
// be incremented, and every emitted step receives the current totals.
type Builder struct {
	algorithm string
	counters  Counters
	steps     []Step
}

func NewBuilder(algorithm string) *Builder {
	return &Builder{algorithm: algorithm, steps: make([]Step, 0, 16)}
}

func (b *Builder) Compare(n int) { b.counters.Comparisons += max(n, 0) }
func (b *Builder) Swap(n int)    { b.counters.Swaps += max(n, 0) }
func (b *Builder) Access(n int)  { b.counters.Accesses += max(n, 0) }

func (b *Builder) Counters() Counters { return b.counters }
func (b *Builder) Len() int           { return len(b.steps) }

// Emit appends s, stamping the current counters and copying the index sets
// and array snapshot so later mutation by the generator cannot leak in.
func (b *Builder) Emit(s Step) {
	s.Highlighted = CloneInts(s.Highlighted)
	s.Compared = CloneInts(s.Compared)
	s.Swapped = CloneInts(s.Swapped)
	s.Sorted = CloneInts(s.Sorted)
	s.Data.Array = CloneInts(s.Data.Array)
	s.Data.Counters = b.counters
	b.steps = append(b.steps, s)
}

// Invalid emits a terminal invalid step carrying reason.
func (b *Builder) Invalid(reason string) {
	b.Emit(Step{
		ID:          "invalid",
		Description: "invalid input: " + reason,
		Data:        Data{Result: &Result{Outcome: OutcomeInvalid, Index: -1, Reason: reason}},
	})
}

// Build freezes the builder into a Trace. A builder with no steps yields a
// single terminal invalid step.
func (b *Builder) Build() *Trace {
	if len(b.steps) == 0 {
		b.Invalid(ErrEmptyTrace.Error())
	}
	steps := b.steps
	b.steps = nil
	return &Trace{algorithm: b.algorithm, steps: steps}
}

// Single builds a one-step invalid trace.
func Single(algorithm, reason string) *Trace {
	b := NewBuilder(algorithm)
	b.Invalid(reason)
	return b.Build()
}

func CloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func CloneTable(rows [][]int) [][]int {
	c := make([][]int, len(rows))
	for i, r := range rows {
		c[i] = CloneInts(r)
	}
	return c
}

// Range returns [lo, lo+1, ..., hi]; empty when hi < lo.
func Range(lo, hi int) []int {
	if hi < lo {
		return []int{}
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
