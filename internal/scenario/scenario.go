// Package scenario runs sorts without a display: scripted YAML scenarios,
// size sweeps and randomized correctness trials.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/oplog"
	"gopkg.in/yaml.v3"
)

var ErrNotSorted = errors.New("scenario: replay did not produce sorted output")

// Scenario is a scripted list of sorting runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Zero Min and Max fall back to the dataset defaults.
type Step struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Pattern   string `yaml:"pattern"`
	Seed      int64  `yaml:"seed"`
	Min       int    `yaml:"min_value"`
	Max       int    `yaml:"max_value"`
}

func (s Step) options() (dataset.Options, error) {
	p, err := dataset.ParsePattern(s.Pattern)
	if err != nil {
		return dataset.Options{}, err
	}
	opts := dataset.Options{Size: s.Size, Min: s.Min, Max: s.Max, Pattern: p}
	if opts.Min == 0 && opts.Max == 0 {
		opts.Min, opts.Max = dataset.DefaultMin, dataset.DefaultMax
	}
	return opts, nil
}

// Result summarizes one verified run.
type Result struct {
	Algorithm string             `yaml:"algorithm" json:"algorithm"`
	Size      int                `yaml:"size" json:"size"`
	Pattern   string             `yaml:"pattern" json:"pattern"`
	Seed      int64              `yaml:"seed" json:"seed"`
	Ops       int                `yaml:"ops" json:"ops"`
	Counts    map[oplog.Kind]int `yaml:"-" json:"-"`
	Sorted    bool               `yaml:"sorted" json:"sorted"`
}

func (r Result) Compares() int { return r.Counts[oplog.KindCompare] }
func (r Result) Swaps() int    { return r.Counts[oplog.KindSwap] }
func (r Result) Sets() int     { return r.Counts[oplog.KindSet] }

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Runner executes runs against a registry.
type Runner struct {
	Registry *algorithms.Registry
	Logger   *slog.Logger
}

func NewRunner(reg *algorithms.Registry, logger *slog.Logger) *Runner {
	if reg == nil {
		reg = algorithms.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{Registry: reg, Logger: logger}
}

// RunOnce generates, replays and checks one log.
func (r *Runner) RunOnce(algorithm string, snapshot []int) (Result, *oplog.Log, error) {
	log, err := r.Registry.Generate(algorithm, snapshot)
	if err != nil {
		return Result{}, nil, err
	}
	if err := log.Validate(); err != nil {
		return Result{}, log, err
	}
	out, err := log.Replay(snapshot)
	if err != nil {
		return Result{}, log, err
	}
	res := Result{
		Algorithm: algorithm,
		Size:      len(snapshot),
		Ops:       log.Len(),
		Counts:    log.Counts(),
		Sorted:    slices.IsSorted(out),
	}
	if !res.Sorted {
		return res, log, fmt.Errorf("%w: %s on %v", ErrNotSorted, algorithm, snapshot)
	}
	return res, log, nil
}

// RunScenario executes every step in order and stops at the first failure.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r.Logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		opts, err := step.options()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		snapshot, err := dataset.NewGenerator(step.Seed).Snapshot(opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, _, err := r.RunOnce(step.Algorithm, snapshot)
		res.Pattern = string(opts.Pattern)
		res.Seed = step.Seed
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, res)
	}

	return results, nil
}

// Sweep measures one algorithm across evenly spaced sizes.
type Sweep struct {
	Algorithm string
	Pattern   dataset.Pattern
	MinSize   int
	MaxSize   int
	NumSteps  int
	Seed      int64
}

func (r *Runner) RunSweep(ctx context.Context, sweep *Sweep) ([]Result, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("scenario: sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if sweep.MinSize < 0 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("scenario: invalid size range [%d, %d]", sweep.MinSize, sweep.MaxSize)
	}

	results := make([]Result, 0, sweep.NumSteps)
	stepSize := 0.0
	if sweep.NumSteps > 1 {
		stepSize = float64(sweep.MaxSize-sweep.MinSize) / float64(sweep.NumSteps-1)
	}
	gen := dataset.NewGenerator(sweep.Seed)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		size := sweep.MinSize + int(float64(i)*stepSize+0.5)
		opts := dataset.DefaultOptions()
		opts.Size = size
		opts.Pattern = sweep.Pattern

		snapshot, err := gen.Snapshot(opts)
		if err != nil {
			return results, err
		}
		res, _, err := r.RunOnce(sweep.Algorithm, snapshot)
		if err != nil {
			return results, err
		}
		res.Pattern = string(opts.Pattern)
		res.Seed = sweep.Seed
		results = append(results, res)

		r.Logger.Debug("sweep", "step", i+1, "of", sweep.NumSteps, "size", size, "ops", res.Ops)
	}

	return results, nil
}

// Trials checks every algorithm against many random snapshots.
type Trials struct {
	Algorithms []string
	NumTrials  int
	MaxSize    int
	Seed       int64
}

// Failure is a snapshot an algorithm did not sort.
type Failure struct {
	Algorithm string
	Snapshot  []int
	Err       error
}

func (r *Runner) RunTrials(ctx context.Context, cfg *Trials) ([]Failure, int, error) {
	names := cfg.Algorithms
	if len(names) == 0 {
		names = r.Registry.List()
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = dataset.DefaultSize
	}

	gen := dataset.NewGenerator(cfg.Seed)
	patterns := dataset.Patterns()
	var failures []Failure
	runs := 0

	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return failures, runs, err
		}
		opts := dataset.DefaultOptions()
		opts.Size = trial % (maxSize + 1)
		opts.Pattern = patterns[trial%len(patterns)]
		snapshot, err := gen.Snapshot(opts)
		if err != nil {
			return failures, runs, err
		}

		for _, name := range names {
			runs++
			if _, _, err := r.RunOnce(name, snapshot); err != nil {
				failures = append(failures, Failure{Algorithm: name, Snapshot: snapshot, Err: err})
			}
		}

		if (trial+1)%100 == 0 {
			r.Logger.Info("trials", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return failures, runs, nil
}
