package playback

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algotrace/internal/logging"
	"github.com/san-kum/algotrace/internal/trace"
)

type Animation int

const (
	Idle Animation = iota
	Playing
	Paused
	Completed
)

func (a Animation) String() string {
	switch a {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Animation(%d)", int(a))
}

func (a Animation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Snapshot is a consistent view of an engine taken under its lock.
type Snapshot struct {
	Engine    string        `json:"engine"`
	Algorithm string        `json:"algorithm"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Animation Animation     `json:"animation"`
	Speed     float64       `json:"speed"`
	Interval  time.Duration `json:"interval"`
	// Progress is the cursor position in percent; a single-step trace is
	// always at 100.
	Progress float64    `json:"progress"`
	Step     trace.Step `json:"step"`
}

// Engine is a playback state machine bound to one trace at a time.
type Engine struct {
	id        string
	clock     Clock
	base      time.Duration
	logger    *slog.Logger
	observers []Observer

	mu     sync.Mutex
	tr     *trace.Trace
	index  int
	anim   Animation
	speed  float64
	timer  Timer
	gen    uint64
	closed bool
}

func New(tr *trace.Trace, opts ...Option) (*Engine, error) {
	if tr == nil {
		return nil, ErrNoTrace
	}
	e := &Engine{
		id:    uuid.NewString(),
		clock: RealClock{},
		base:  DefaultBaseInterval,
		speed: DefaultSpeed,
		tr:    tr,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !validSpeed(e.speed) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, e.speed)
	}
	if e.base <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, e.base)
	}
	if e.clock == nil {
		e.clock = RealClock{}
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.logger = e.logger.With("engine", e.id)
	return e, nil
}

func validSpeed(s float64) bool {
	return s > 0 && !math.IsNaN(s) && !math.IsInf(s, 0)
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Current returns the step under the cursor.
func (e *Engine) Current() trace.Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tr.At(e.index)
}

func (e *Engine) Trace() *trace.Trace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tr
}

func (e *Engine) snapshotLocked() Snapshot {
	total := e.tr.Len()
	progress := 100.0
	if total > 1 {
		progress = float64(e.index) / float64(total-1) * 100
	}
	return Snapshot{
		Engine:    e.id,
		Algorithm: e.tr.Algorithm(),
		Index:     e.index,
		Total:     total,
		Animation: e.anim,
		Speed:     e.speed,
		Interval:  e.intervalLocked(),
		Progress:  progress,
		Step:      e.tr.At(e.index),
	}
}

func (e *Engine) last() int { return e.tr.Len() - 1 }

func (e *Engine) intervalLocked() time.Duration {
	return time.Duration(float64(e.base) / e.speed)
}

// cancelLocked stops the pending tick and invalidates any tick already in
// flight.
func (e *Engine) cancelLocked() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) scheduleLocked() {
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.intervalLocked(), func() { e.tick(gen) })
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.gen || e.anim != Playing {
		e.mu.Unlock()
		e.logger.Debug("stale tick dropped", "generation", gen)
		for _, o := range e.observers {
			o.OnStaleTick()
		}
		return
	}
	e.timer = nil
	if e.index < e.last() {
		e.index++
	}
	if e.index >= e.last() {
		e.anim = Completed
	} else {
		e.scheduleLocked()
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.logger.Debug("tick", "index", snap.Index, "state", snap.Animation)
	for _, o := range e.observers {
		o.OnTick(snap)
		o.OnChange(snap)
	}
}

// apply runs fn under the engine lock and notifies observers afterwards.
// fn reports whether it changed the engine state.
func (e *Engine) apply(cmd Command, fn func() bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	changed := fn()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.logger.Debug("command", "cmd", cmd, "index", snap.Index, "state", snap.Animation, "changed", changed)
	for _, o := range e.observers {
		o.OnCommand(cmd)
		if changed {
			o.OnChange(snap)
		}
	}
}

// Play starts auto-advance from idle or paused. It does nothing while
// playing or once completed; Reset rewinds a completed trace.
func (e *Engine) Play() {
	e.apply(CmdPlay, func() bool {
		switch e.anim {
		case Playing:
			return false
		case Completed:
			e.logger.Debug("play ignored, trace completed")
			return false
		}
		e.cancelLocked()
		if e.index >= e.last() {
			e.anim = Completed
			return true
		}
		e.anim = Playing
		e.scheduleLocked()
		return true
	})
}

// Pause stops auto-advance. It is a no-op unless playing.
func (e *Engine) Pause() {
	e.apply(CmdPause, func() bool {
		if e.anim != Playing {
			return false
		}
		e.cancelLocked()
		e.anim = Paused
		return true
	})
}

// Reset rewinds to the first step and goes idle.
func (e *Engine) Reset() {
	e.apply(CmdReset, func() bool {
		e.cancelLocked()
		changed := e.index != 0 || e.anim != Idle
		e.index = 0
		e.anim = Idle
		return changed
	})
}

// StepForward moves one step ahead. It is ignored while playing.
func (e *Engine) StepForward() {
	e.apply(CmdStepForward, func() bool {
		if e.anim == Playing {
			return false
		}
		e.cancelLocked()
		prev, prevAnim := e.index, e.anim
		if e.index < e.last() {
			e.index++
		}
		if e.index == e.last() {
			e.anim = Completed
		} else {
			e.anim = Paused
		}
		return e.index != prev || e.anim != prevAnim
	})
}

// StepBackward moves one step back and clears completed. It is ignored while
// playing.
func (e *Engine) StepBackward() {
	e.apply(CmdStepBackward, func() bool {
		if e.anim == Playing {
			return false
		}
		e.cancelLocked()
		prev, prevAnim := e.index, e.anim
		if e.index > 0 {
			e.index--
		}
		if e.anim == Completed {
			e.anim = Paused
		}
		return e.index != prev || e.anim != prevAnim
	})
}

// GoToStep moves the cursor to i clamped to the trace bounds and stops
// auto-advance. The engine ends completed on the last step and paused
// anywhere else.
func (e *Engine) GoToStep(i int) {
	e.apply(CmdGoToStep, func() bool {
		e.cancelLocked()
		prev, prevAnim := e.index, e.anim
		e.index = min(max(i, 0), e.last())
		if e.index == e.last() {
			e.anim = Completed
		} else {
			e.anim = Paused
		}
		return e.index != prev || e.anim != prevAnim
	})
}

// SetSpeed changes the speed multiplier. A tick that is already scheduled
// keeps its interval; the new speed applies from the next one.
func (e *Engine) SetSpeed(s float64) error {
	if !validSpeed(s) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, s)
	}
	e.apply(CmdSetSpeed, func() bool {
		changed := e.speed != s
		e.speed = s
		return changed
	})
	return nil
}

// Bind replaces the trace and rewinds to idle.
func (e *Engine) Bind(tr *trace.Trace) error {
	if tr == nil {
		return ErrNoTrace
	}
	e.apply(CmdBind, func() bool {
		e.cancelLocked()
		e.tr = tr
		e.index = 0
		e.anim = Idle
		return true
	})
	return nil
}

// Close cancels the pending tick. Later commands are ignored; the read
// surface keeps working.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.cancelLocked()
	e.closed = true
	if e.anim == Playing {
		e.anim = Paused
	}
	e.mu.Unlock()

	e.logger.Debug("command", "cmd", CmdClose)
	for _, o := range e.observers {
		o.OnCommand(CmdClose)
	}
}
