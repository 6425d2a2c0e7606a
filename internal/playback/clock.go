package playback

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules a callback after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock uses the runtime timer wheel.
var RealClock Clock = realClock{}

// ManualClock is a deterministic Clock whose time only moves when told to.
// Callbacks run on the goroutine that advances the clock.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func NewManualClock() *ManualClock { return &ManualClock{} }

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now reports the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending counts timers that have neither fired nor been stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// NextDelay returns how far away the earliest pending timer is.
func (c *ManualClock) NextDelay() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.nextLocked(-1)
	if t == nil {
		return 0, false
	}
	return t.at - c.now, true
}

// Advance moves time forward by d, firing due timers in order, including
// timers scheduled by the callbacks themselves. It returns how many fired.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	fired := 0
	for {
		c.mu.Lock()
		t := c.nextLocked(target)
		if t == nil {
			c.now = target
			c.compactLocked()
			c.mu.Unlock()
			return fired
		}
		c.now = t.at
		t.fired = true
		c.mu.Unlock()

		t.f()
		fired++
	}
}

// FireNext jumps to the earliest pending timer and fires it.
func (c *ManualClock) FireNext() bool {
	d, ok := c.NextDelay()
	if !ok {
		return false
	}
	c.mu.Lock()
	t := c.nextLocked(c.now + d)
	c.now += d
	t.fired = true
	c.mu.Unlock()

	t.f()
	return true
}

// RunUntilIdle fires timers until none remain or limit is reached.
func (c *ManualClock) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && c.FireNext() {
		n++
	}
	return n
}

// nextLocked returns the earliest live timer due at or before limit; a
// negative limit means no bound.
func (c *ManualClock) nextLocked(limit time.Duration) *manualTimer {
	live := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.stopped && !t.fired && (limit < 0 || t.at <= limit) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at == live[j].at {
			return live[i].seq < live[j].seq
		}
		return live[i].at < live[j].at
	})
	return live[0]
}

func (c *ManualClock) compactLocked() {
	kept := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	c.timers = kept
}
