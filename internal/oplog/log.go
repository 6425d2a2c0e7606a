package oplog

import (
	"errors"
	"fmt"
)

// Log is the fixed, ordered record of one complete sort run against a
// snapshot of length Size.
type Log struct {
	algorithm string
	size      int
	ops       []Op
}

// Builder accumulates operations. Algorithms append to it; Finish seals it.
type Builder struct {
	ops []Op
}

// NewBuilder returns a builder with room for hint operations.
func NewBuilder(hint int) *Builder {
	return &Builder{ops: make([]Op, 0, hint)}
}

func (b *Builder) Compare(i, j int)    { b.ops = append(b.ops, Compare{I: i, J: j}) }
func (b *Builder) Swap(i, j int)       { b.ops = append(b.ops, Swap{I: i, J: j}) }
func (b *Builder) Set(pos, value int)  { b.ops = append(b.ops, SetOne(pos, value)) }
func (b *Builder) MarkSorted(p ...int) { b.ops = append(b.ops, MarkSorted{Positions: p}) }

// Append adds an arbitrary operation.
func (b *Builder) Append(op Op) { b.ops = append(b.ops, op) }

// Len reports how many operations have been recorded so far.
func (b *Builder) Len() int { return len(b.ops) }

// Finish appends the terminal MarkSorted over [0, size) and returns the
// sealed log. The builder must not be used afterwards.
func (b *Builder) Finish(algorithm string, size int) *Log {
	b.ops = append(b.ops, MarkAll(size))
	l := &Log{algorithm: algorithm, size: size, ops: b.ops}
	b.ops = nil
	return l
}

// FromOps builds a log from an explicit operation list, e.g. one decoded
// from an export. The list must already carry its terminal MarkSorted.
func FromOps(algorithm string, size int, ops []Op) (*Log, error) {
	cp := make([]Op, len(ops))
	copy(cp, ops)
	l := &Log{algorithm: algorithm, size: size, ops: cp}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Log) Algorithm() string { return l.algorithm }

// Size is the length of the snapshot the log was generated from.
func (l *Log) Size() int { return l.size }

func (l *Log) Len() int { return len(l.ops) }

// At returns the operation at position i.
func (l *Log) At(i int) Op { return l.ops[i] }

// Ops returns a copy of the operation sequence.
func (l *Log) Ops() []Op {
	out := make([]Op, len(l.ops))
	copy(out, l.ops)
	return out
}

// Counts tallies operations by kind.
func (l *Log) Counts() map[Kind]int {
	counts := make(map[Kind]int, 4)
	for _, op := range l.ops {
		counts[op.Kind()]++
	}
	return counts
}

// Validate checks every index against Size and the terminal MarkSorted.
func (l *Log) Validate() error {
	var errs []error
	for i, op := range l.ops {
		if err := CheckBounds(op, l.size); err != nil {
			var ie *IndexError
			if errors.As(err, &ie) {
				ie.Pos = i
			}
			errs = append(errs, err)
		}
	}
	if len(l.ops) == 0 {
		errs = append(errs, ErrMissingTerminal)
		return errors.Join(errs...)
	}
	last, ok := l.ops[len(l.ops)-1].(MarkSorted)
	if !ok || len(last.Positions) != l.size {
		errs = append(errs, ErrMissingTerminal)
	} else {
		for i, p := range last.Positions {
			if p != i {
				errs = append(errs, fmt.Errorf("%w: terminal position %d is %d", ErrMissingTerminal, i, p))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Replay applies every operation to a copy of snapshot and returns the
// resulting values. It is the reference used to check generated logs.
func (l *Log) Replay(snapshot []int) ([]int, error) {
	if len(snapshot) != l.size {
		return nil, fmt.Errorf("oplog: snapshot length %d, log generated for %d", len(snapshot), l.size)
	}
	out := make([]int, len(snapshot))
	copy(out, snapshot)
	for i, op := range l.ops {
		if err := CheckBounds(op, l.size); err != nil {
			var ie *IndexError
			if errors.As(err, &ie) {
				ie.Pos = i
			}
			return nil, err
		}
		switch o := op.(type) {
		case Swap:
			out[o.I], out[o.J] = out[o.J], out[o.I]
		case Set:
			for k, p := range o.Positions {
				out[p] = o.Values[k]
			}
		case Compare, MarkSorted:
		}
	}
	return out, nil
}
