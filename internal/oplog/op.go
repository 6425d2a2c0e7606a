package oplog

import "fmt"

// Kind names an operation variant. It is used for counters, export and
// rendering, never for dispatch.
type Kind int

const (
	KindCompare Kind = iota
	KindSwap
	KindSet
	KindMarkSorted
)

var kindNames = [...]string{
	KindCompare:    "compare",
	KindSwap:       "swap",
	KindSet:        "set",
	KindMarkSorted: "markSorted",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrMalformed, s)
}

// Kinds lists every variant in declaration order.
func Kinds() []Kind {
	return []Kind{KindCompare, KindSwap, KindSet, KindMarkSorted}
}

// Op is one replayable step of a sort.
type Op interface {
	Kind() Kind
	// Indices returns the positions the operation touches. The returned
	// slice must not be modified.
	Indices() []int
	String() string
	isOp()
}

// Compare records that positions I and J were inspected.
type Compare struct{ I, J int }

// Swap exchanges the values at I and J.
type Swap struct{ I, J int }

// Set overwrites Positions[k] with Values[k]. The two slices are parallel.
type Set struct {
	Positions []int
	Values    []int
}

// MarkSorted flags positions as being in final order.
type MarkSorted struct{ Positions []int }

func (Compare) Kind() Kind    { return KindCompare }
func (Swap) Kind() Kind       { return KindSwap }
func (Set) Kind() Kind        { return KindSet }
func (MarkSorted) Kind() Kind { return KindMarkSorted }

func (c Compare) Indices() []int    { return []int{c.I, c.J} }
func (s Swap) Indices() []int       { return []int{s.I, s.J} }
func (s Set) Indices() []int        { return s.Positions }
func (m MarkSorted) Indices() []int { return m.Positions }

func (c Compare) String() string { return fmt.Sprintf("compare %v", c.Indices()) }
func (s Swap) String() string    { return fmt.Sprintf("swap %v", s.Indices()) }
func (s Set) String() string     { return fmt.Sprintf("set %v <- %v", s.Positions, s.Values) }
func (m MarkSorted) String() string {
	return fmt.Sprintf("markSorted %v", m.Positions)
}

func (Compare) isOp()    {}
func (Swap) isOp()       {}
func (Set) isOp()        {}
func (MarkSorted) isOp() {}

// SetOne is shorthand for a single-position write.
func SetOne(pos, value int) Set {
	return Set{Positions: []int{pos}, Values: []int{value}}
}

// MarkAll marks positions [0, n).
func MarkAll(n int) MarkSorted {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	return MarkSorted{Positions: pos}
}
