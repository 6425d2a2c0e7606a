package algorithms

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/san-kum/sortviz/internal/oplog"
)

func randomInput(r *rand.Rand, n, max int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = r.Intn(max)
	}
	return a
}

func TestGenerateSortsCorrectly(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	inputs := [][]int{
		{},
		{7},
		{2, 1},
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{5, 5, 5, 5},
		{3, 1, 3, 1, 2},
	}
	for n := 0; n < 40; n++ {
		inputs = append(inputs, randomInput(r, n, 10))
		inputs = append(inputs, randomInput(r, n, 1000))
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				log, err := Generate(name, in)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				if err := log.Validate(); err != nil {
					t.Fatalf("input %v: invalid log: %v", in, err)
				}
				got, err := log.Replay(in)
				if err != nil {
					t.Fatalf("input %v: replay: %v", in, err)
				}
				want := slices.Clone(in)
				slices.Sort(want)
				if !slices.Equal(got, want) {
					t.Fatalf("input %v: replay gave %v, want %v", in, got, want)
				}
			}
		})
	}
}

func TestGenerateTerminalMarkSorted(t *testing.T) {
	for _, name := range Names() {
		for n := 0; n < 12; n++ {
			in := make([]int, n)
			for i := range in {
				in[i] = n - i
			}
			log, err := Generate(name, in)
			if err != nil {
				t.Fatal(err)
			}
			last, ok := log.At(log.Len() - 1).(oplog.MarkSorted)
			if !ok {
				t.Fatalf("%s n=%d: last op is %T", name, n, log.At(log.Len()-1))
			}
			if !reflect.DeepEqual(last.Positions, oplog.MarkAll(n).Positions) {
				t.Errorf("%s n=%d: terminal covers %v", name, n, last.Positions)
			}
		}
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	for _, name := range Names() {
		in := []int{9, 4, 7, 1, 3}
		if _, err := Generate(name, in); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(in, []int{9, 4, 7, 1, 3}) {
			t.Errorf("%s mutated its input: %v", name, in)
		}
	}
}

func TestGenerateEmptyAndSingleton(t *testing.T) {
	for _, name := range Names() {
		for _, in := range [][]int{{}, {42}} {
			log, err := Generate(name, in)
			if err != nil {
				t.Fatal(err)
			}
			if log.Len() != 1 {
				t.Errorf("%s %v: expected 1 op, got %d: %v", name, in, log.Len(), log.Ops())
			}
		}
	}
}

func TestGenerateUnknown(t *testing.T) {
	_, err := Generate("bogo", []int{1})
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestBubbleExactLog(t *testing.T) {
	log, err := Generate("bubble", []int{5, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []oplog.Op{
		oplog.Compare{I: 0, J: 1},
		oplog.Swap{I: 0, J: 1},
		oplog.Compare{I: 1, J: 2},
		oplog.Swap{I: 1, J: 2},
		oplog.MarkSorted{Positions: []int{2}},
		oplog.Compare{I: 0, J: 1},
		oplog.Swap{I: 0, J: 1},
		oplog.MarkSorted{Positions: []int{1}},
		oplog.MarkSorted{Positions: []int{0, 1, 2}},
	}
	if got := log.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("bubble log:\n got %v\nwant %v", got, want)
	}
}

func TestInsertionExactLog(t *testing.T) {
	log, err := Generate("insertion", []int{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []oplog.Op{
		oplog.Compare{I: 0, J: 1},
		oplog.SetOne(1, 3),
		oplog.SetOne(0, 1),
		oplog.Compare{I: 1, J: 2},
		oplog.SetOne(2, 3),
		oplog.Compare{I: 0, J: 2},
		oplog.SetOne(1, 2),
		oplog.MarkSorted{Positions: []int{0, 1, 2}},
	}
	if got := log.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("insertion log:\n got %v\nwant %v", got, want)
	}
}

func TestQuickExactLog(t *testing.T) {
	log, err := Generate("quick", []int{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []oplog.Op{
		oplog.Compare{I: 0, J: 2},
		oplog.Compare{I: 1, J: 2},
		oplog.Swap{I: 0, J: 1},
		oplog.Swap{I: 1, J: 2},
		oplog.MarkSorted{Positions: []int{0, 1, 2}},
	}
	if got := log.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("quick log:\n got %v\nwant %v", got, want)
	}
}

func TestMergeExactLog(t *testing.T) {
	log, err := Generate("merge", []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []oplog.Op{
		oplog.Compare{I: 0, J: 1},
		oplog.SetOne(0, 1),
		oplog.SetOne(1, 2),
		oplog.MarkSorted{Positions: []int{0, 1}},
	}
	if got := log.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("merge log:\n got %v\nwant %v", got, want)
	}
}

func TestSelectionSortedInputHasNoSwaps(t *testing.T) {
	log, err := Generate("selection", []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range log.Ops() {
		switch op.(type) {
		case oplog.Compare, oplog.MarkSorted:
		default:
			t.Errorf("unexpected %s in log of sorted input", op)
		}
	}
	if c := log.Counts(); c[oplog.KindSwap] != 0 || c[oplog.KindCompare] != 3 {
		t.Errorf("unexpected counts %v", c)
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	want := []string{"bubble", "insertion", "selection", "merge", "quick"}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	r.Register(Info{Name: "noop"}, func(a []int, b *oplog.Builder) {})
	if got := r.List(); got[len(got)-1] != "noop" {
		t.Errorf("expected extra algorithm last, got %v", got)
	}
	if !r.Has("noop") {
		t.Error("Has(noop) = false")
	}
	if info, ok := r.Describe("merge"); !ok || info.Complexity == "" {
		t.Errorf("Describe(merge) = %+v, %v", info, ok)
	}
}

func BenchmarkGenerate(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	in := randomInput(r, 200, 400)
	for _, name := range Names() {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Generate(name, in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
