package playback

import "errors"

var (
	ErrInvalidSpeed    = errors.New("playback: speed must be positive and finite")
	ErrInvalidInterval = errors.New("playback: base interval must be positive")
	ErrNoTrace         = errors.New("playback: no trace")
)
