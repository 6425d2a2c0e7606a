// Package display folds operations onto the visible array and derives the
// per-position highlight markers a renderer turns into bar colours.
package display

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/oplog"
)

// Highlight is the marker attached to one bar position.
type Highlight int

const (
	Neutral Highlight = iota
	Comparing
	Swapped
	Written
	Sorted
)

func (h Highlight) String() string {
	switch h {
	case Neutral:
		return "neutral"
	case Comparing:
		return "comparing"
	case Swapped:
		return "swapped"
	case Written:
		return "written"
	case Sorted:
		return "sorted"
	}
	return fmt.Sprintf("highlight(%d)", int(h))
}

// Frame is the visible state: array values plus highlight markers.
//
// Transient markers (comparing, swapped, written) describe only the most
// recently applied operation. The sorted marker accumulates and survives
// later transient resets until Clear is called.
type Frame struct {
	values    []int
	sorted    []bool
	active    []int
	activeFor Highlight
}

// NewFrame starts a neutral frame over a copy of values.
func NewFrame(values []int) Frame {
	v := make([]int, len(values))
	copy(v, values)
	return Frame{values: v, sorted: make([]bool, len(values))}
}

// Len is the number of bars.
func (f Frame) Len() int { return len(f.values) }

// Values returns a copy of the visible array.
func (f Frame) Values() []int {
	out := make([]int, len(f.values))
	copy(out, f.values)
	return out
}

// Value returns the visible value at i.
func (f Frame) Value(i int) int { return f.values[i] }

// Highlight returns the marker for position i. A transient marker wins over
// sorted while it is active.
func (f Frame) Highlight(i int) Highlight {
	for _, p := range f.active {
		if p == i {
			return f.activeFor
		}
	}
	if f.sorted[i] {
		return Sorted
	}
	return Neutral
}

// Highlights returns the marker of every position.
func (f Frame) Highlights() []Highlight {
	out := make([]Highlight, len(f.values))
	for i := range out {
		if f.sorted[i] {
			out[i] = Sorted
		}
	}
	for _, p := range f.active {
		out[p] = f.activeFor
	}
	return out
}

// SortedCount reports how many positions carry the persistent sorted marker.
func (f Frame) SortedCount() int {
	n := 0
	for _, s := range f.sorted {
		if s {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (f Frame) Clone() Frame {
	c := Frame{
		values:    append([]int(nil), f.values...),
		sorted:    append([]bool(nil), f.sorted...),
		active:    append([]int(nil), f.active...),
		activeFor: f.activeFor,
	}
	if c.values == nil {
		c.values = []int{}
		c.sorted = []bool{}
	}
	return c
}

// Clear drops every marker, sorted included, keeping the values.
func (f *Frame) Clear() {
	for i := range f.sorted {
		f.sorted[i] = false
	}
	f.active = f.active[:0]
	f.activeFor = Neutral
}

// Apply folds op onto the frame in place.
//
// An index outside the frame is a generator defect and panics with an
// *oplog.IndexError.
func (f *Frame) Apply(op oplog.Op) {
	if err := oplog.CheckBounds(op, len(f.values)); err != nil {
		panic(err)
	}
	switch o := op.(type) {
	case oplog.Compare:
		f.mark(Comparing, o.I, o.J)
	case oplog.Swap:
		f.values[o.I], f.values[o.J] = f.values[o.J], f.values[o.I]
		f.mark(Swapped, o.I, o.J)
	case oplog.Set:
		for k, p := range o.Positions {
			f.values[p] = o.Values[k]
		}
		f.mark(Written, o.Positions...)
	case oplog.MarkSorted:
		for _, p := range o.Positions {
			f.sorted[p] = true
		}
		f.active = f.active[:0]
		f.activeFor = Neutral
	default:
		panic(fmt.Sprintf("display: unhandled operation %T", op))
	}
}

func (f *Frame) mark(h Highlight, positions ...int) {
	f.active = append(f.active[:0], positions...)
	f.activeFor = h
}

// Project is the pure form of Apply: prev is left untouched.
func Project(prev Frame, op oplog.Op) Frame {
	next := prev.Clone()
	next.Apply(op)
	return next
}

// Fold applies ops[0:n) to a fresh frame over snapshot.
func Fold(snapshot []int, log *oplog.Log, n int) Frame {
	f := NewFrame(snapshot)
	for i := 0; i < n && i < log.Len(); i++ {
		f.Apply(log.At(i))
	}
	return f
}
