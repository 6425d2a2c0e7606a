package playback

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
)

type recorder struct {
	mu       sync.Mutex
	ops      []oplog.Op
	cursors  []int
	finishes int
}

func (r *recorder) OnApply(op oplog.Op, st Status, f display.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.cursors = append(r.cursors, st.Cursor)
}

func (r *recorder) OnFinish(st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes++
}

// leakyClock never cancels, so stopped ticks still fire.
type leakyClock struct{ *ManualClock }

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) Timer {
	c.ManualClock.AfterFunc(d, f)
	return leakyTimer{}
}

var _ = Describe("Scheduler", func() {
	var (
		clock *ManualClock
		rec   *recorder
		s     *Scheduler
		snap  []int
		delay time.Duration
	)

	BeforeEach(func() {
		clock = NewManualClock()
		rec = &recorder{}
		snap = []int{5, 3, 1, 4, 2}
		delay = Delay(DefaultSpeed)

		var err error
		s, err = New(snap, "bubble", WithClock(clock), WithObserver(rec))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects unknown algorithms", func() {
		_, err := New(snap, "bogo")
		Expect(err).To(MatchError(algorithms.ErrUnknownAlgorithm))
	})

	It("starts idle with no log and the snapshot on screen", func() {
		st := s.Status()
		Expect(st.State).To(Equal(Idle))
		Expect(st.LogLen).To(Equal(0))
		Expect(st.Cursor).To(Equal(0))
		Expect(st.Algorithm).To(Equal("bubble"))
		Expect(s.Frame().Values()).To(Equal(snap))
	})

	It("does not share the caller's slice", func() {
		snap[0] = 99
		Expect(s.Snapshot()[0]).To(Equal(5))
	})

	Describe("Play", func() {
		It("generates a log and applies one operation per tick", func() {
			s.Play()
			st := s.Status()
			Expect(st.State).To(Equal(Running))
			Expect(st.LogLen).To(BeNumerically(">", 1))
			Expect(st.Cursor).To(Equal(0))
			Expect(clock.Pending()).To(Equal(1))

			Expect(clock.Advance(delay)).To(Equal(1))
			Expect(s.Status().Cursor).To(Equal(1))
			Expect(clock.Advance(delay)).To(Equal(1))
			Expect(s.Status().Cursor).To(Equal(2))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("is a no-op while running", func() {
			s.Play()
			s.Play()
			Expect(clock.Pending()).To(Equal(1))
		})

		It("runs to the end and clears running", func() {
			s.Play()
			n := s.Status().LogLen
			Expect(clock.RunUntilIdle(10_000)).To(Equal(n))

			st := s.Status()
			Expect(st.State).To(Equal(Finished))
			Expect(st.Running).To(BeFalse())
			Expect(st.Cursor).To(Equal(n))
			Expect(clock.Pending()).To(Equal(0))
			Expect(rec.finishes).To(Equal(1))
			Expect(s.Frame().Values()).To(Equal([]int{1, 2, 3, 4, 5}))
			Expect(s.Frame().Highlights()).To(HaveEach(display.Sorted))
		})

		It("replays the log in order with a monotone cursor", func() {
			s.Play()
			clock.RunUntilIdle(10_000)
			Expect(rec.ops).To(Equal(s.Log().Ops()))
			Expect(slices.IsSorted(rec.cursors)).To(BeTrue())
		})

		It("stays finished when played again", func() {
			s.Play()
			clock.RunUntilIdle(10_000)
			s.Play()
			Expect(s.Status().State).To(Equal(Finished))
			Expect(clock.Pending()).To(Equal(0))
		})

		It("handles an empty snapshot", func() {
			s.SetSnapshot(nil)
			s.Play()
			Expect(s.Status().LogLen).To(Equal(1))
			clock.RunUntilIdle(10)
			Expect(s.Status().State).To(Equal(Finished))
			Expect(s.Frame().Values()).To(BeEmpty())
		})
	})

	Describe("Pause", func() {
		It("keeps the cursor and resumes without skipping or repeating", func() {
			s.Play()
			clock.Advance(3 * delay)
			s.Pause()

			st := s.Status()
			Expect(st.State).To(Equal(Paused))
			Expect(st.Cursor).To(Equal(3))
			Expect(clock.Pending()).To(Equal(0))

			clock.Advance(10 * delay)
			Expect(s.Status().Cursor).To(Equal(3))

			s.Play()
			clock.RunUntilIdle(10_000)
			Expect(rec.ops).To(Equal(s.Log().Ops()))
		})
	})

	Describe("Step", func() {
		It("generates a log and applies exactly one operation", func() {
			Expect(s.Step()).To(BeTrue())
			st := s.Status()
			Expect(st.Cursor).To(Equal(1))
			Expect(st.Running).To(BeFalse())
			Expect(st.State).To(Equal(Paused))
			Expect(s.Frame().Highlight(0)).To(Equal(display.Comparing))
		})

		It("cancels a pending tick", func() {
			s.Play()
			clock.Advance(delay)
			Expect(s.Step()).To(BeTrue())
			Expect(clock.Pending()).To(Equal(0))
			Expect(s.Status().Cursor).To(Equal(2))
		})

		It("is a silent no-op once exhausted", func() {
			n := s.Log().Len()
			for i := 0; i < n; i++ {
				Expect(s.Step()).To(BeTrue())
			}
			Expect(s.Step()).To(BeFalse())
			Expect(s.Status().Cursor).To(Equal(n))
			Expect(rec.finishes).To(Equal(1))
		})
	})

	Describe("Seek", func() {
		It("moves forward only", func() {
			Expect(s.Seek(4)).To(Equal(4))
			Expect(s.Seek(2)).To(Equal(4))
			Expect(s.Seek(1 << 20)).To(Equal(s.Log().Len()))
			Expect(s.Status().State).To(Equal(Finished))
		})
	})

	Describe("Reset", func() {
		It("rewinds to zero with a fresh log and restored values", func() {
			old := s.Log()
			s.Play()
			clock.Advance(6 * delay)
			s.Reset()

			st := s.Status()
			Expect(st.Cursor).To(Equal(0))
			Expect(st.State).To(Equal(Idle))
			Expect(st.Applied.Total()).To(Equal(0))
			Expect(clock.Pending()).To(Equal(0))
			Expect(s.Log()).NotTo(BeIdenticalTo(old))
			Expect(s.Log().Ops()).To(Equal(old.Ops()))
			Expect(s.Frame().Values()).To(Equal([]int{5, 3, 1, 4, 2}))
			Expect(s.Frame().Highlights()).To(HaveEach(display.Neutral))
		})

		It("adopts the visible values under rebase", func() {
			r, err := New([]int{5, 3, 1, 4, 2}, "bubble", WithClock(clock), WithResetMode(ResetRebase))
			Expect(err).NotTo(HaveOccurred())
			r.Seek(6)
			visible := r.Frame().Values()
			r.Reset()

			Expect(r.Snapshot()).To(Equal(visible))
			Expect(r.Frame().Values()).To(Equal(visible))
			Expect(r.Status().Cursor).To(Equal(0))

			r.Seek(1 << 20)
			Expect(r.Frame().Values()).To(Equal([]int{1, 2, 3, 4, 5}))
		})
	})

	Describe("invalidation", func() {
		It("drops the log when the snapshot changes", func() {
			s.Play()
			clock.Advance(2 * delay)
			s.SetSnapshot([]int{2, 1})

			st := s.Status()
			Expect(st.State).To(Equal(Idle))
			Expect(st.LogLen).To(Equal(0))
			Expect(st.Size).To(Equal(2))
			Expect(clock.Pending()).To(Equal(0))
			Expect(s.Frame().Values()).To(Equal([]int{2, 1}))
		})

		It("drops the log when the algorithm changes", func() {
			s.Seek(3)
			Expect(s.SelectAlgorithm("quick")).To(Succeed())

			st := s.Status()
			Expect(st.Algorithm).To(Equal("quick"))
			Expect(st.State).To(Equal(Idle))
			Expect(st.LogLen).To(Equal(0))
			Expect(s.Frame().Values()).To(Equal([]int{5, 3, 1, 4, 2}))
			Expect(s.Log().Algorithm()).To(Equal("quick"))
		})

		It("keeps state on an unknown algorithm", func() {
			s.Seek(3)
			Expect(s.SelectAlgorithm("bogo")).To(MatchError(algorithms.ErrUnknownAlgorithm))
			Expect(s.Status().Cursor).To(Equal(3))
		})

		It("discards ticks that fire after cancellation", func() {
			leaky := leakyClock{NewManualClock()}
			l, err := New([]int{3, 2, 1}, "selection", WithClock(leaky))
			Expect(err).NotTo(HaveOccurred())

			l.Play()
			l.SetSnapshot([]int{9, 8, 7})
			leaky.Advance(time.Second)
			Expect(l.Status().Cursor).To(Equal(0))

			l.Play()
			l.Pause()
			leaky.Advance(time.Second)
			Expect(l.Status().Cursor).To(Equal(0))
			Expect(l.Status().State).To(Equal(Idle))
		})
	})

	Describe("SetSpeed", func() {
		It("leaves the pending tick alone and applies to the next one", func() {
			s.SetSpeed(MinSpeed)
			s.Play()
			d, ok := clock.NextDelay()
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(Delay(MinSpeed)))

			s.SetSpeed(MaxSpeed)
			d, _ = clock.NextDelay()
			Expect(d).To(Equal(Delay(MinSpeed)))

			clock.FireNext()
			d, _ = clock.NextDelay()
			Expect(d).To(Equal(MinDelay))
			Expect(s.Status().Speed).To(Equal(MaxSpeed))
		})
	})

	Describe("Run", func() {
		It("plays to completion on the real clock", func() {
			r, err := New([]int{4, 1, 3, 2}, "insertion", WithSpeed(MaxSpeed))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			Expect(r.Run(ctx)).To(Succeed())
			Expect(r.Frame().Values()).To(Equal([]int{1, 2, 3, 4}))
			Expect(r.Status().State).To(Equal(Finished))
		})

		It("pauses when the context ends", func() {
			r, err := New([]int{4, 1, 3, 2}, "bubble", WithClock(NewManualClock()))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(r.Run(ctx)).To(MatchError(context.Canceled))
			Expect(r.Status().Running).To(BeFalse())
		})
	})

	Describe("logging", func() {
		It("records transitions at debug level", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			clk := NewManualClock()
			r, err := New([]int{2, 1}, "bubble", WithClock(clk), WithLogger(logger))
			Expect(err).NotTo(HaveOccurred())

			r.Play()
			clk.RunUntilIdle(100)
			r.Reset()

			out := buf.String()
			Expect(out).To(ContainSubstring("msg=play"))
			Expect(out).To(ContainSubstring("msg=finished"))
			Expect(out).To(ContainSubstring("msg=reset"))
			Expect(out).To(ContainSubstring("algorithm=bubble"))
		})
	})
})
