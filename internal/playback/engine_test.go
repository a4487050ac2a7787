package playback_test

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algotrace/internal/playback"
)

var _ = Describe("Engine", func() {
	var (
		clock  *playback.ManualClock
		rec    *recorder
		engine *playback.Engine
	)

	newEngine := func(steps int, opts ...playback.Option) *playback.Engine {
		opts = append([]playback.Option{
			playback.WithClock(clock),
			playback.WithBaseInterval(base),
			playback.WithObserver(rec.observer()),
		}, opts...)
		e, err := playback.New(stepsTrace(steps), opts...)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		clock = playback.NewManualClock()
		rec = &recorder{}
		engine = newEngine(5)
	})

	Describe("construction", func() {
		It("starts idle on the first step", func() {
			s := engine.Snapshot()
			Expect(s.Index).To(Equal(0))
			Expect(s.Total).To(Equal(5))
			Expect(s.Animation).To(Equal(playback.Idle))
			Expect(s.Speed).To(Equal(1.0))
			Expect(s.Interval).To(Equal(base))
			Expect(s.Progress).To(BeZero())
			Expect(s.Step.ID).To(Equal("s0"))
			Expect(engine.ID()).NotTo(BeEmpty())
		})

		It("rejects a nil trace", func() {
			_, err := playback.New(nil)
			Expect(err).To(MatchError(playback.ErrNoTrace))
		})

		It("rejects bad options", func() {
			_, err := playback.New(stepsTrace(2), playback.WithSpeed(0))
			Expect(err).To(MatchError(playback.ErrInvalidSpeed))

			_, err = playback.New(stepsTrace(2), playback.WithBaseInterval(0))
			Expect(err).To(MatchError(playback.ErrInvalidInterval))
		})

		It("gives every engine its own id", func() {
			Expect(newEngine(2).ID()).NotTo(Equal(engine.ID()))
		})
	})

	Describe("auto-advance", func() {
		It("plays a 5-step trace to completion and then stays put", func() {
			engine.Play()
			Expect(engine.Snapshot().Animation).To(Equal(playback.Playing))

			for range 5 {
				clock.Advance(base)
			}
			s := engine.Snapshot()
			Expect(s.Animation).To(Equal(playback.Completed))
			Expect(s.Index).To(Equal(4))
			Expect(s.Progress).To(Equal(100.0))
			Expect(clock.Pending()).To(BeZero())

			clock.Advance(base)
			Expect(engine.Snapshot()).To(Equal(s))
			Expect(rec.ticks).To(Equal(4))
		})

		It("advances exactly one step per interval", func() {
			engine.Play()
			clock.Advance(base - time.Millisecond)
			Expect(engine.Snapshot().Index).To(Equal(0))

			clock.Advance(time.Millisecond)
			Expect(engine.Snapshot().Index).To(Equal(1))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("completes a single-step trace without scheduling", func() {
			engine = newEngine(1)
			engine.Play()

			s := engine.Snapshot()
			Expect(s.Animation).To(Equal(playback.Completed))
			Expect(s.Progress).To(Equal(100.0))
			Expect(clock.Pending()).To(BeZero())
		})

		It("ignores Play while already playing", func() {
			engine.Play()
			clock.Advance(base / 2)
			engine.Play()
			clock.Advance(base / 2)

			Expect(engine.Snapshot().Index).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		It("cancels the pending tick mid-playback", func() {
			engine.Play()
			clock.Advance(2 * base)
			Expect(engine.Snapshot().Index).To(Equal(2))

			engine.Reset()
			after := engine.Snapshot()
			Expect(after.Index).To(Equal(0))
			Expect(after.Animation).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(BeZero())

			clock.Advance(base)
			Expect(engine.Snapshot()).To(Equal(after))
		})
	})

	Describe("Play on a completed trace", func() {
		It("is a no-op until Reset", func() {
			engine.GoToStep(4)
			engine.Play()
			Expect(engine.Snapshot().Animation).To(Equal(playback.Completed))
			Expect(clock.Pending()).To(BeZero())

			engine.Reset()
			engine.Play()
			Expect(engine.Snapshot().Animation).To(Equal(playback.Playing))
		})
	})

	Describe("Pause", func() {
		It("is idempotent", func() {
			engine.Play()
			clock.Advance(base)
			engine.Pause()
			first := engine.Snapshot()
			changes := len(rec.changes)

			engine.Pause()
			Expect(engine.Snapshot()).To(Equal(first))
			Expect(rec.changes).To(HaveLen(changes))

			clock.Advance(3 * base)
			Expect(engine.Snapshot()).To(Equal(first))
			Expect(first.Animation).To(Equal(playback.Paused))
			Expect(first.Index).To(Equal(1))
		})

		It("does nothing when idle", func() {
			engine.Pause()
			Expect(engine.Snapshot().Animation).To(Equal(playback.Idle))
		})

		It("resumes from the paused step", func() {
			engine.Play()
			clock.Advance(base)
			engine.Pause()
			engine.Play()
			clock.Advance(base)
			Expect(engine.Snapshot().Index).To(Equal(2))
		})
	})

	Describe("stepping", func() {
		It("steps forward to completion", func() {
			engine.StepForward()
			Expect(engine.Snapshot().Animation).To(Equal(playback.Paused))
			Expect(engine.Snapshot().Index).To(Equal(1))

			for range 10 {
				engine.StepForward()
			}
			Expect(engine.Snapshot().Index).To(Equal(4))
			Expect(engine.Snapshot().Animation).To(Equal(playback.Completed))
		})

		It("steps backward and clears completed", func() {
			engine.GoToStep(4)
			engine.StepBackward()

			s := engine.Snapshot()
			Expect(s.Index).To(Equal(3))
			Expect(s.Animation).To(Equal(playback.Paused))
		})

		It("does not step below zero", func() {
			engine.StepBackward()
			Expect(engine.Snapshot().Index).To(Equal(0))
		})

		It("ignores stepping while playing", func() {
			engine.Play()
			engine.StepForward()
			engine.StepBackward()

			s := engine.Snapshot()
			Expect(s.Index).To(Equal(0))
			Expect(s.Animation).To(Equal(playback.Playing))
		})
	})

	Describe("GoToStep", func() {
		DescribeTable("clamps and sets the animation state",
			func(target, index int, anim playback.Animation) {
				engine.GoToStep(target)
				s := engine.Snapshot()
				Expect(s.Index).To(Equal(index))
				Expect(s.Animation).To(Equal(anim))
			},
			Entry("negative", -3, 0, playback.Paused),
			Entry("first", 0, 0, playback.Paused),
			Entry("middle", 2, 2, playback.Paused),
			Entry("last", 4, 4, playback.Completed),
			Entry("beyond", 99, 4, playback.Completed),
		)

		It("stops playback", func() {
			engine.Play()
			engine.GoToStep(2)
			Expect(clock.Pending()).To(BeZero())

			clock.Advance(base)
			Expect(engine.Snapshot().Index).To(Equal(2))
			Expect(engine.Snapshot().Animation).To(Equal(playback.Paused))
		})
	})

	Describe("SetSpeed", func() {
		DescribeTable("rejects non-positive and non-finite speeds",
			func(s float64) {
				Expect(engine.SetSpeed(s)).To(MatchError(playback.ErrInvalidSpeed))
				Expect(engine.Snapshot().Speed).To(Equal(1.0))
			},
			Entry("zero", 0.0),
			Entry("negative", -2.0),
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
		)

		It("applies to the next tick, not the scheduled one", func() {
			engine.Play()
			Expect(engine.SetSpeed(2)).To(Succeed())
			Expect(engine.Snapshot().Interval).To(Equal(base / 2))

			clock.Advance(base / 2)
			Expect(engine.Snapshot().Index).To(Equal(0))

			clock.Advance(base / 2)
			Expect(engine.Snapshot().Index).To(Equal(1))

			clock.Advance(base / 2)
			Expect(engine.Snapshot().Index).To(Equal(2))
		})
	})

	Describe("stale ticks", func() {
		var leaky leakyClock

		BeforeEach(func() {
			leaky = leakyClock{playback.NewManualClock()}
			engine = newEngine(5, playback.WithClock(leaky))
		})

		It("drops a tick that fires after Bind", func() {
			engine.Play()
			Expect(engine.Bind(stepsTrace(3))).To(Succeed())

			leaky.Advance(base)
			s := engine.Snapshot()
			Expect(s.Index).To(Equal(0))
			Expect(s.Total).To(Equal(3))
			Expect(s.Animation).To(Equal(playback.Idle))
			Expect(rec.stale).To(Equal(1))
			Expect(rec.ticks).To(BeZero())
		})

		It("drops a tick that fires after Reset and replay", func() {
			engine.Play()
			engine.Reset()
			engine.Play()

			leaky.Advance(base)
			Expect(engine.Snapshot().Index).To(Equal(1))
			Expect(rec.stale).To(Equal(1))
			Expect(rec.ticks).To(Equal(1))
		})

		It("drops a tick that fires after GoToStep", func() {
			engine.Play()
			engine.GoToStep(3)

			leaky.Advance(base)
			Expect(engine.Snapshot().Index).To(Equal(3))
			Expect(rec.stale).To(Equal(1))
		})
	})

	Describe("Bind", func() {
		It("rejects nil and rewinds to idle", func() {
			Expect(engine.Bind(nil)).To(MatchError(playback.ErrNoTrace))

			engine.GoToStep(3)
			Expect(engine.Bind(stepsTrace(2))).To(Succeed())
			s := engine.Snapshot()
			Expect(s.Index).To(Equal(0))
			Expect(s.Total).To(Equal(2))
			Expect(s.Animation).To(Equal(playback.Idle))
		})
	})

	Describe("Close", func() {
		It("cancels the tick and ignores later commands", func() {
			engine.Play()
			engine.Close()
			Expect(clock.Pending()).To(BeZero())

			engine.GoToStep(3)
			engine.Reset()
			Expect(engine.SetSpeed(4)).To(Succeed())
			s := engine.Snapshot()
			Expect(s.Index).To(Equal(0))
			Expect(s.Speed).To(Equal(1.0))
			Expect(s.Animation).To(Equal(playback.Paused))
			Expect(rec.commands).To(HaveExactElements(playback.CmdPlay, playback.CmdClose))
		})
	})

	Describe("observers", func() {
		It("see every command but only real changes", func() {
			engine.Pause()
			engine.StepForward()
			engine.Pause()

			Expect(rec.commands).To(HaveExactElements(playback.CmdPause, playback.CmdStepForward, playback.CmdPause))
			Expect(rec.changes).To(HaveLen(1))
			Expect(rec.changes[0].Index).To(Equal(1))
		})
	})

	It("keeps the cursor in range under any command sequence", func() {
		rng := rand.New(rand.NewSource(7))
		for range 2000 {
			switch rng.Intn(8) {
			case 0:
				engine.Play()
			case 1:
				engine.Pause()
			case 2:
				engine.Reset()
			case 3:
				engine.StepForward()
			case 4:
				engine.StepBackward()
			case 5:
				engine.GoToStep(rng.Intn(20) - 10)
			case 6:
				_ = engine.SetSpeed(0.25 + rng.Float64()*4)
			case 7:
				clock.Advance(time.Duration(rng.Intn(500)) * time.Millisecond)
			}
			s := engine.Snapshot()
			Expect(s.Index).To(BeNumerically(">=", 0))
			Expect(s.Index).To(BeNumerically("<", s.Total))
			Expect(clock.Pending()).To(BeNumerically("<=", 1))
			if s.Animation == playback.Completed {
				Expect(s.Index).To(Equal(s.Total - 1))
			}
		}
	})

	It("seeks round-trip to the clamped index", func() {
		for k := -5; k < 10; k++ {
			engine.GoToStep(k)
			Expect(engine.Snapshot().Index).To(Equal(min(max(k, 0), 4)))
		}
	})
})

var _ = Describe("RealClock", func() {
	It("drives an engine on wall time", func() {
		e, err := playback.New(stepsTrace(3), playback.WithBaseInterval(time.Millisecond))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(e.Close)

		e.Play()
		Eventually(func() playback.Animation { return e.Snapshot().Animation }).
			WithTimeout(time.Second).
			Should(Equal(playback.Completed))
		Expect(e.Current().ID).To(Equal("s2"))
	})
})
