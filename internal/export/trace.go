package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/sortviz/internal/oplog"
)

var ErrBadTrace = errors.New("export: bad trace")

// Trace is a log together with the snapshot it was generated from.
type Trace struct {
	Algorithm string    `json:"algorithm"`
	Snapshot  []int     `json:"snapshot"`
	Ops       []traceOp `json:"ops"`
}

type traceOp struct {
	Kind      string `json:"kind"`
	Indices   []int  `json:"indices,omitempty"`
	Positions []int  `json:"positions,omitempty"`
	Values    []int  `json:"values,omitempty"`
}

func NewTrace(snapshot []int, log *oplog.Log) *Trace {
	t := &Trace{
		Algorithm: log.Algorithm(),
		Snapshot:  append([]int(nil), snapshot...),
		Ops:       make([]traceOp, 0, log.Len()),
	}
	for i := 0; i < log.Len(); i++ {
		t.Ops = append(t.Ops, encodeOp(log.At(i)))
	}
	return t
}

func encodeOp(op oplog.Op) traceOp {
	t := traceOp{Kind: op.Kind().String()}
	switch op := op.(type) {
	case oplog.Compare, oplog.Swap:
		t.Indices = op.Indices()
	case oplog.Set:
		t.Positions = op.Positions
		t.Values = op.Values
	case oplog.MarkSorted:
		t.Positions = op.Positions
	}
	return t
}

func decodeOp(t traceOp) (oplog.Op, error) {
	kind, err := oplog.ParseKind(t.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case oplog.KindCompare, oplog.KindSwap:
		if len(t.Indices) != 2 {
			return nil, fmt.Errorf("%w: %s needs 2 indices, got %d", ErrBadTrace, t.Kind, len(t.Indices))
		}
		if kind == oplog.KindCompare {
			return oplog.Compare{I: t.Indices[0], J: t.Indices[1]}, nil
		}
		return oplog.Swap{I: t.Indices[0], J: t.Indices[1]}, nil
	case oplog.KindSet:
		return oplog.Set{Positions: t.Positions, Values: t.Values}, nil
	default:
		return oplog.MarkSorted{Positions: t.Positions}, nil
	}
}

// Log validates the trace's operations against its snapshot.
func (t *Trace) Log() (*oplog.Log, error) {
	ops := make([]oplog.Op, 0, len(t.Ops))
	for i, raw := range t.Ops {
		op, err := decodeOp(raw)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return oplog.FromOps(t.Algorithm, len(t.Snapshot), ops)
}

func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func ReadJSON(r io.Reader) (*Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	return &t, nil
}

var csvHeader = []string{"step", "kind", "positions", "values"}

// WriteCSV writes one row per operation. The snapshot goes in a leading
// "snapshot" row so the file is self-contained.
func WriteCSV(w io.Writer, t *Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{"-1", "snapshot", t.Algorithm, joinInts(t.Snapshot)}); err != nil {
		return err
	}
	for i, op := range t.Ops {
		positions := op.Positions
		if op.Indices != nil {
			positions = op.Indices
		}
		row := []string{strconv.Itoa(i), op.Kind, joinInts(positions), joinInts(op.Values)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (*Trace, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	if len(rows) < 2 || rows[1][1] != "snapshot" {
		return nil, fmt.Errorf("%w: missing snapshot row", ErrBadTrace)
	}

	t := &Trace{Algorithm: rows[1][2]}
	if t.Snapshot, err = splitInts(rows[1][3]); err != nil {
		return nil, err
	}
	for _, row := range rows[2:] {
		positions, err := splitInts(row[2])
		if err != nil {
			return nil, err
		}
		values, err := splitInts(row[3])
		if err != nil {
			return nil, err
		}
		op := traceOp{Kind: row[1], Values: values}
		switch row[1] {
		case oplog.KindCompare.String(), oplog.KindSwap.String():
			op.Indices = positions
		default:
			op.Positions = positions
		}
		t.Ops = append(t.Ops, op)
	}
	return t, nil
}

func joinInts(a []int) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
		}
		out = append(out, v)
	}
	return out, nil
}
