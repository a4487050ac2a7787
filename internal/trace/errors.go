package trace

import "errors"

// Domain errors for trace access.
var (
	// ErrIndexOutOfRange indicates a step index outside [0, Len-1].
	ErrIndexOutOfRange = errors.New("trace: step index out of range")

	// ErrEmptyTrace indicates an attempt to build a trace from zero steps.
	ErrEmptyTrace = errors.New("trace: no steps emitted")
)
