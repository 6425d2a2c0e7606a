package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/oplog"
)

const sample = `
name: compare-quadratics
description: three quadratic sorts on the same input
steps:
  - algorithm: bubble
    size: 20
    seed: 7
  - algorithm: insertion
    size: 20
    seed: 7
    pattern: reversed
  - algorithm: selection
    size: 0
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "compare-quadratics" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}

	results, err := NewRunner(nil, nil).RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Sorted {
			t.Errorf("%s not sorted", r.Algorithm)
		}
	}
	if results[1].Pattern != "reversed" || results[0].Pattern != "random" {
		t.Errorf("patterns not recorded: %q %q", results[0].Pattern, results[1].Pattern)
	}
	if results[2].Ops != 1 {
		t.Errorf("empty step should only mark sorted, got %d ops", results[2].Ops)
	}
	// one key placement per outer pass plus the shifts
	if got := results[1].Sets(); got <= results[1].Size-1 {
		t.Errorf("expected shifts on reversed input, got %d writes", got)
	}
}

func TestRunScenario_Errors(t *testing.T) {
	runner := NewRunner(nil, nil)
	tests := []struct {
		name string
		step Step
	}{
		{"unknown algorithm", Step{Algorithm: "bogo", Size: 5}},
		{"unknown pattern", Step{Algorithm: "quick", Size: 5, Pattern: "spiral"}},
		{"negative size", Step{Algorithm: "quick", Size: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.RunScenario(context.Background(), &Scenario{Steps: []Step{tt.step}})
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := runner.RunScenario(context.Background(), &Scenario{Steps: []Step{{Algorithm: "bogo"}}}); !errors.Is(err, algorithms.ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRunScenario_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil).RunScenario(ctx, &Scenario{Steps: []Step{{Algorithm: "merge", Size: 4}}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	results, err := NewRunner(nil, nil).RunSweep(context.Background(), &Sweep{
		Algorithm: "bubble",
		MinSize:   10,
		MaxSize:   50,
		NumSteps:  5,
		Seed:      1,
	})
	if err != nil {
		t.Fatal(err)
	}
	wantSizes := []int{10, 20, 30, 40, 50}
	for i, r := range results {
		if r.Size != wantSizes[i] {
			t.Errorf("step %d: expected size %d, got %d", i, wantSizes[i], r.Size)
		}
		// bubble always compares n(n-1)/2 pairs
		if want := r.Size * (r.Size - 1) / 2; r.Compares() != want {
			t.Errorf("size %d: expected %d compares, got %d", r.Size, want, r.Compares())
		}
	}

	if _, err := NewRunner(nil, nil).RunSweep(context.Background(), &Sweep{Algorithm: "bubble", NumSteps: 0}); err == nil {
		t.Error("expected error for zero steps")
	}
}

func TestRunTrials(t *testing.T) {
	failures, runs, err := NewRunner(nil, nil).RunTrials(context.Background(), &Trials{NumTrials: 50, MaxSize: 16, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Errorf("expected no failures, got %+v", failures[0])
	}
	if runs != 50*len(algorithms.Names()) {
		t.Errorf("expected %d runs, got %d", 50*len(algorithms.Names()), runs)
	}
}

func TestRunTrials_DetectsBrokenSort(t *testing.T) {
	reg := algorithms.NewRegistry()
	reg.Register(algorithms.Info{Name: "noop"}, func(a []int, b *oplog.Builder) {
		if len(a) > 1 {
			b.Compare(0, 1)
		}
	})

	failures, _, err := NewRunner(reg, nil).RunTrials(context.Background(), &Trials{
		Algorithms: []string{"noop"},
		NumTrials:  10,
		MaxSize:    8,
		Seed:       5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) == 0 {
		t.Fatal("expected failures for a sort that does nothing")
	}
	if !errors.Is(failures[0].Err, ErrNotSorted) {
		t.Errorf("expected ErrNotSorted, got %v", failures[0].Err)
	}
}
