package playback

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop reports whether the call prevented the callback from running.
	Stop() bool
}

type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules on wall time with time.AfterFunc.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a virtual clock that only moves when told to. Callbacks run
// synchronously on the goroutine that advances the clock, in due-time order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   uint64
	f     func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + max(d, 0), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.pending, t)
	if i < 0 {
		return false
	}
	c.pending = slices.Delete(c.pending, i, i+1)
	return true
}

// Now is the virtual time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending is the number of timers that have neither fired nor been stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// popDue removes and returns the earliest timer due at or before limit.
func (c *ManualClock) popDue(limit time.Duration) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return nil
	}
	i := 0
	for j, t := range c.pending[1:] {
		if earlier(t, c.pending[i]) {
			i = j + 1
		}
	}
	t := c.pending[i]
	if t.at > limit {
		return nil
	}
	c.pending = slices.Delete(c.pending, i, i+1)
	c.now = max(c.now, t.at)
	return t
}

func earlier(a, b *manualTimer) bool {
	if c := cmp.Compare(a.at, b.at); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// Advance moves virtual time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks fired along the way. It returns the
// number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	limit := c.now + max(d, 0)
	c.mu.Unlock()

	fired := 0
	for t := c.popDue(limit); t != nil; t = c.popDue(limit) {
		t.f()
		fired++
	}

	c.mu.Lock()
	c.now = max(c.now, limit)
	c.mu.Unlock()
	return fired
}

// Next jumps to the earliest pending timer and fires it. It reports false
// when nothing is pending.
func (c *ManualClock) Next() bool {
	t := c.popDue(time.Duration(math.MaxInt64))
	if t == nil {
		return false
	}
	t.f()
	return true
}
