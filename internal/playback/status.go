package playback

import (
	"fmt"
	"time"

	"github.com/san-kum/sortviz/internal/oplog"
)

// State is the scheduler's position in its lifecycle.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ResetMode decides what Reset does with the visible values.
type ResetMode int

const (
	// ResetRestore puts the snapshot's values back on screen.
	ResetRestore ResetMode = iota
	// ResetRebase adopts the current visible values as the new snapshot.
	ResetRebase
)

func (m ResetMode) String() string {
	if m == ResetRebase {
		return "rebase"
	}
	return "restore"
}

// ParseResetMode accepts "restore" or "rebase"; empty means restore.
func ParseResetMode(s string) (ResetMode, error) {
	switch s {
	case "", "restore":
		return ResetRestore, nil
	case "rebase":
		return ResetRebase, nil
	}
	return 0, fmt.Errorf("playback: unknown reset mode %q", s)
}

// Counts tallies applied operations by kind.
type Counts struct {
	Compares int `json:"compares" yaml:"compares"`
	Swaps    int `json:"swaps" yaml:"swaps"`
	Writes   int `json:"writes" yaml:"writes"`
	Marks    int `json:"marks" yaml:"marks"`
}

func (c *Counts) add(k oplog.Kind) {
	switch k {
	case oplog.KindCompare:
		c.Compares++
	case oplog.KindSwap:
		c.Swaps++
	case oplog.KindSet:
		c.Writes++
	case oplog.KindMarkSorted:
		c.Marks++
	}
}

// Total is the number of applied operations.
func (c Counts) Total() int { return c.Compares + c.Swaps + c.Writes + c.Marks }

// Status is a point-in-time view for renderers and debugging.
type Status struct {
	Algorithm  string
	State      State
	Running    bool
	Cursor     int
	LogLen     int
	Size       int
	Speed      int
	Delay      time.Duration
	Applied    Counts
	Generation uint64
}

// Progress is Cursor/LogLen in [0, 1]; 0 when no log exists.
func (s Status) Progress() float64 {
	if s.LogLen == 0 {
		return 0
	}
	return float64(s.Cursor) / float64(s.LogLen)
}
