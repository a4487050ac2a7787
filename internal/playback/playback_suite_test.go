package playback_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algotrace/internal/playback"
	"github.com/san-kum/algotrace/internal/trace"
)

func TestPlayback(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Playback Suite")
}

const base = 100 * time.Millisecond

// stepsTrace builds a trace of n plain steps.
func stepsTrace(n int) *trace.Trace {
	b := trace.NewBuilder("demo")
	for i := range n {
		b.Compare(1)
		s := trace.Step{ID: fmt.Sprintf("s%d", i)}
		if i == n-1 {
			s.Data.Result = &trace.Result{Outcome: trace.OutcomeComplete, Index: -1}
		}
		b.Emit(s)
	}
	return b.Build()
}

// leakyClock never manages to stop a timer, like a wall clock timer that has
// already fired and is waiting for the engine lock.
type leakyClock struct {
	*playback.ManualClock
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.ManualClock.AfterFunc(d, f)
	return leakyTimer{}
}

// recorder counts observer events.
type recorder struct {
	commands []playback.Command
	ticks    int
	stale    int
	changes  []playback.Snapshot
}

func (r *recorder) observer() playback.Observer {
	return playback.ObserverFuncs{
		Command: func(c playback.Command) { r.commands = append(r.commands, c) },
		Tick:    func(playback.Snapshot) { r.ticks++ },
		Stale:   func() { r.stale++ },
		Change:  func(s playback.Snapshot) { r.changes = append(r.changes, s) },
	}
}
