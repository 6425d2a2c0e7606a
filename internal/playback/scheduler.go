package playback

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
)

// Observer is notified as the scheduler applies operations.
type Observer interface {
	OnApply(op oplog.Op, st Status, f display.Frame)
	OnFinish(st Status)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

func WithClock(c Clock) Option { return func(s *Scheduler) { s.clock = c } }

func WithSpeed(v int) Option { return func(s *Scheduler) { s.speed = ClampSpeed(v) } }

func WithResetMode(m ResetMode) Option { return func(s *Scheduler) { s.resetMode = m } }

func WithLogger(l *slog.Logger) Option { return func(s *Scheduler) { s.logger = l } }

func WithRegistry(r *algorithms.Registry) Option { return func(s *Scheduler) { s.registry = r } }

func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observers = append(s.observers, o) }
}

// Scheduler replays one operation log against the visible frame.
type Scheduler struct {
	mu sync.Mutex

	clock     Clock
	registry  *algorithms.Registry
	logger    *slog.Logger
	observers []Observer
	resetMode ResetMode
	speed     int

	snapshot  []int
	algorithm string
	log       *oplog.Log
	cursor    int
	frame     display.Frame
	running   bool
	applied   Counts

	pending Timer
	gen     uint64
	idle    chan struct{}
}

// New creates an idle scheduler over a copy of snapshot.
func New(snapshot []int, algorithm string, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		clock:    RealClock,
		registry: algorithms.Default(),
		logger:   slog.New(slog.DiscardHandler),
		speed:    DefaultSpeed,
		idle:     closedChan(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.registry.Has(algorithm) {
		return nil, fmt.Errorf("%w: %s", algorithms.ErrUnknownAlgorithm, algorithm)
	}
	s.algorithm = algorithm
	s.snapshot = cloneInts(snapshot)
	s.frame = display.NewFrame(s.snapshot)
	return s, nil
}

// AddObserver registers o for subsequent operations.
func (s *Scheduler) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Play starts timed advancement. It is a no-op while running or when the
// log is exhausted.
func (s *Scheduler) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if !s.ensureLogLocked() {
		return
	}
	if s.cursor >= s.log.Len() {
		return
	}
	s.running = true
	s.idle = make(chan struct{})
	s.scheduleLocked()
	s.logger.Debug("play", "algorithm", s.algorithm, "cursor", s.cursor, "len", s.log.Len())
}

// Pause cancels any pending tick. The cursor is left exactly where it is.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Debug("pause", "algorithm", s.algorithm, "cursor", s.cursor)
	}
	s.stopLocked()
}

// Step pauses and applies one operation. It reports false when the log
// was already exhausted.
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if !s.ensureLogLocked() {
		return false
	}
	if s.cursor >= s.log.Len() {
		return false
	}
	s.applyLocked()
	return true
}

// Seek pauses and applies operations until the cursor reaches target or
// the end of the log. Targets behind the cursor leave it unchanged.
func (s *Scheduler) Seek(target int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if !s.ensureLogLocked() {
		return s.cursor
	}
	for s.cursor < target && s.cursor < s.log.Len() {
		s.applyLocked()
	}
	return s.cursor
}

// Reset pauses, regenerates the log and rewinds the cursor to 0. All
// highlight markers are cleared. Under ResetRestore the snapshot values go
// back on screen; under ResetRebase the visible values become the snapshot.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if s.resetMode == ResetRebase {
		s.snapshot = s.frame.Values()
	}
	s.frame = display.NewFrame(s.snapshot)
	s.log = nil
	s.cursor = 0
	s.applied = Counts{}
	s.ensureLogLocked()
	s.logger.Debug("reset", "algorithm", s.algorithm, "mode", s.resetMode.String(), "len", s.logLenLocked())
}

// SetSnapshot replaces the array and drops the current log.
func (s *Scheduler) SetSnapshot(values []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = cloneInts(values)
	s.invalidateLocked("snapshot")
}

// SelectAlgorithm switches algorithm and drops the current log.
func (s *Scheduler) SelectAlgorithm(name string) error {
	if !s.registry.Has(name) {
		return fmt.Errorf("%w: %s", algorithms.ErrUnknownAlgorithm, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetMode == ResetRebase {
		s.snapshot = s.frame.Values()
	}
	s.algorithm = name
	s.invalidateLocked("algorithm")
	return nil
}

// SetSpeed changes the delay used by ticks scheduled from now on. A tick
// that is already pending keeps its delay.
func (s *Scheduler) SetSpeed(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = ClampSpeed(v)
}

// Status returns the current counters and lifecycle state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Frame returns a copy of the visible frame.
func (s *Scheduler) Frame() display.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.Clone()
}

// Snapshot returns a copy of the array the current log is valid against.
func (s *Scheduler) Snapshot() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInts(s.snapshot)
}

// Log returns the live log, generating it if needed.
func (s *Scheduler) Log() *oplog.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLogLocked()
	return s.log
}

// Wait blocks until the scheduler is not running, either because the log
// ran out or because it was paused.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	ch := s.idle
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run plays to the end of the log. If ctx ends first playback is paused
// and ctx.Err is returned.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Play()
	if err := s.Wait(ctx); err != nil {
		s.Pause()
		return err
	}
	return nil
}

func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.running {
		return
	}
	s.pending = nil
	s.applyLocked()
	if s.running {
		s.scheduleLocked()
	}
}

// applyLocked applies log[cursor] and advances. Reaching the end clears
// running and notifies observers.
func (s *Scheduler) applyLocked() {
	op := s.log.At(s.cursor)
	s.frame.Apply(op)
	s.cursor++
	s.applied.add(op.Kind())

	if len(s.observers) > 0 {
		st := s.statusLocked()
		f := s.frame.Clone()
		for _, o := range s.observers {
			o.OnApply(op, st, f)
		}
	}

	if s.cursor >= s.log.Len() {
		s.stopLocked()
		st := s.statusLocked()
		s.logger.Debug("finished", "algorithm", s.algorithm, "len", s.log.Len(), "ops", st.Applied.Total())
		for _, o := range s.observers {
			o.OnFinish(st)
		}
	}
}

func (s *Scheduler) scheduleLocked() {
	gen := s.gen
	s.pending = s.clock.AfterFunc(Delay(s.speed), func() { s.tick(gen) })
}

// stopLocked cancels the pending tick and clears running. Bumping the
// generation discards a tick whose timer already fired but has not yet
// acquired the lock.
func (s *Scheduler) stopLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
	if s.running {
		s.running = false
		close(s.idle)
	}
}

func (s *Scheduler) invalidateLocked(reason string) {
	s.stopLocked()
	s.log = nil
	s.cursor = 0
	s.applied = Counts{}
	s.frame = display.NewFrame(s.snapshot)
	s.logger.Debug("invalidate", "reason", reason, "algorithm", s.algorithm, "size", len(s.snapshot))
}

func (s *Scheduler) ensureLogLocked() bool {
	if s.log != nil {
		return true
	}
	l, err := s.registry.Generate(s.algorithm, s.snapshot)
	if err != nil {
		s.logger.Error("generate log", "algorithm", s.algorithm, "err", err)
		return false
	}
	s.log = l
	s.cursor = 0
	return true
}

func (s *Scheduler) logLenLocked() int {
	if s.log == nil {
		return 0
	}
	return s.log.Len()
}

func (s *Scheduler) statusLocked() Status {
	st := Status{
		Algorithm:  s.algorithm,
		Running:    s.running,
		Cursor:     s.cursor,
		LogLen:     s.logLenLocked(),
		Size:       len(s.snapshot),
		Speed:      s.speed,
		Delay:      Delay(s.speed),
		Applied:    s.applied,
		Generation: s.gen,
	}
	switch {
	case s.running:
		st.State = Running
	case s.log == nil || s.cursor == 0:
		st.State = Idle
	case s.cursor >= s.log.Len():
		st.State = Finished
	default:
		st.State = Paused
	}
	return st
}

func cloneInts(a []int) []int {
	out := make([]int, len(a))
	copy(out, a)
	return out
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
