package oplog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex indicates an operation references a position outside
	// the array it was generated for. It always points at a generator defect.
	ErrInvalidIndex = errors.New("oplog: index out of range")

	// ErrMissingTerminal indicates a log that does not end with exactly one
	// MarkSorted covering every position.
	ErrMissingTerminal = errors.New("oplog: log does not end with a full MarkSorted")

	// ErrMalformed indicates a structurally broken operation, such as a Set
	// whose positions and values differ in length.
	ErrMalformed = errors.New("oplog: malformed operation")
)

// IndexError reports which operation referenced an out-of-range position.
type IndexError struct {
	Pos    int // offset of the operation in the log, -1 if unknown
	Kind   Kind
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: op %d (%s) references %d, length %d", ErrInvalidIndex, e.Pos, e.Kind, e.Index, e.Length)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// CheckBounds returns an *IndexError if op touches a position outside [0, n).
func CheckBounds(op Op, n int) error {
	for _, idx := range op.Indices() {
		if idx < 0 || idx >= n {
			return &IndexError{Pos: -1, Kind: op.Kind(), Index: idx, Length: n}
		}
	}
	if s, ok := op.(Set); ok && len(s.Positions) != len(s.Values) {
		return fmt.Errorf("%w: set has %d positions and %d values", ErrMalformed, len(s.Positions), len(s.Values))
	}
	return nil
}
