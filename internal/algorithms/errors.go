package algorithms

import "errors"

var (
	ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")
	ErrUnknownPreset    = errors.New("algorithms: unknown preset")
	ErrBadInput         = errors.New("algorithms: malformed input")
)
