// Package metrics measures playback as it happens: in-process counters
// that follow the Metric interface, and a Prometheus collector for the
// same events.
package metrics

import (
	"sort"

	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
	"github.com/san-kum/sortviz/internal/playback"
)

type Metric interface {
	Name() string
	Observe(op oplog.Op, f display.Frame)
	Value() float64
	Reset()
}

type OpCount struct {
	name  string
	kind  oplog.Kind
	count int
}

var countNames = map[oplog.Kind]string{
	oplog.KindCompare:    "compares",
	oplog.KindSwap:       "swaps",
	oplog.KindSet:        "sets",
	oplog.KindMarkSorted: "marks",
}

func NewOpCount(kind oplog.Kind) *OpCount {
	return &OpCount{name: countNames[kind], kind: kind}
}

func (c *OpCount) Name() string { return c.name }

func (c *OpCount) Observe(op oplog.Op, _ display.Frame) {
	if op.Kind() == c.kind {
		c.count++
	}
}

func (c *OpCount) Value() float64 { return float64(c.count) }

func (c *OpCount) Reset() { c.count = 0 }

// Writes counts single positions touched by swaps and sets, two per swap.
type Writes struct {
	name  string
	count int
}

func NewWrites() *Writes { return &Writes{name: "writes"} }

func (w *Writes) Name() string { return w.name }

func (w *Writes) Observe(op oplog.Op, _ display.Frame) {
	switch op := op.(type) {
	case oplog.Swap:
		w.count += 2
	case oplog.Set:
		w.count += len(op.Positions)
	}
}

func (w *Writes) Value() float64 { return float64(w.count) }

func (w *Writes) Reset() { w.count = 0 }

// SortedFraction is the share of positions carrying the sorted marker in the
// most recent frame.
type SortedFraction struct {
	name  string
	value float64
}

func NewSortedFraction() *SortedFraction { return &SortedFraction{name: "sorted_fraction"} }

func (s *SortedFraction) Name() string { return s.name }

func (s *SortedFraction) Observe(_ oplog.Op, f display.Frame) {
	if f.Len() == 0 {
		s.value = 1
		return
	}
	s.value = float64(f.SortedCount()) / float64(f.Len())
}

func (s *SortedFraction) Value() float64 { return s.value }

func (s *SortedFraction) Reset() { s.value = 0 }

// Standard returns one counter per operation kind, a write counter and the
// sorted fraction.
func Standard() []Metric {
	ms := make([]Metric, 0, len(oplog.Kinds())+2)
	for _, k := range oplog.Kinds() {
		ms = append(ms, NewOpCount(k))
	}
	return append(ms, NewWrites(), NewSortedFraction())
}

// Recorder feeds a set of metrics from a playback.Scheduler. It is called
// under the scheduler's lock, so Snapshot must only be read from the same
// goroutine that drives playback or after it finished.
type Recorder struct {
	metrics  []Metric
	finished int
}

func NewRecorder(ms ...Metric) *Recorder {
	if len(ms) == 0 {
		ms = Standard()
	}
	return &Recorder{metrics: ms}
}

func (r *Recorder) OnApply(op oplog.Op, _ playback.Status, f display.Frame) {
	for _, m := range r.metrics {
		m.Observe(op, f)
	}
}

func (r *Recorder) OnFinish(playback.Status) { r.finished++ }

// Finished is how many times playback reached the end of a log.
func (r *Recorder) Finished() int { return r.finished }

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
	r.finished = 0
}

func (r *Recorder) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names lists metric names in a stable order.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.metrics))
	for _, m := range r.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

// Observe runs every operation of log through ms without a scheduler.
func Observe(log *oplog.Log, snapshot []int, ms ...Metric) {
	f := display.NewFrame(snapshot)
	for i := 0; i < log.Len(); i++ {
		op := log.At(i)
		f.Apply(op)
		for _, m := range ms {
			m.Observe(op, f)
		}
	}
}
