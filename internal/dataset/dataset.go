// Package dataset produces the arrays that get sorted: fresh snapshots of a
// requested size and shape, reproducible from a seed.
package dataset

import (
	"fmt"
	"math/rand"
	"sort"
)

const (
	DefaultMin  = 10
	DefaultMax  = 400
	DefaultSize = 40

	// MinSize and MaxSize bound the interactive size control.
	MinSize = 5
	MaxSize = 120
)

// Pattern is the initial ordering of a snapshot.
type Pattern string

const (
	Random       Pattern = "random"
	Sorted       Pattern = "sorted"
	Reversed     Pattern = "reversed"
	NearlySorted Pattern = "nearly-sorted"
	FewUnique    Pattern = "few-unique"
)

var patterns = []Pattern{Random, Sorted, Reversed, NearlySorted, FewUnique}

// Patterns lists every supported pattern.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// ParsePattern validates s; empty means Random.
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return Random, nil
	}
	for _, p := range patterns {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("dataset: unknown pattern %q (available: %v)", s, patterns)
}

// Options describes one snapshot request.
type Options struct {
	Size    int
	Min     int
	Max     int
	Pattern Pattern
}

// DefaultOptions matches the interactive defaults.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Min: DefaultMin, Max: DefaultMax, Pattern: Random}
}

func (o Options) validate() error {
	if o.Size < 0 {
		return fmt.Errorf("dataset: size must be non-negative, got %d", o.Size)
	}
	if o.Min > o.Max {
		return fmt.Errorf("dataset: min %d exceeds max %d", o.Min, o.Max)
	}
	return nil
}

// Generator draws snapshots from a seeded source. It is not safe for
// concurrent use.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 { return g.seed }

// Snapshot returns a new array shaped by opts.
func (g *Generator) Snapshot(opts Options) ([]int, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	p, err := ParsePattern(string(opts.Pattern))
	if err != nil {
		return nil, err
	}

	a := make([]int, opts.Size)
	switch p {
	case FewUnique:
		levels := g.levels(opts.Min, opts.Max, 4)
		for i := range a {
			a[i] = levels[g.rng.Intn(len(levels))]
		}
		return a, nil
	default:
		for i := range a {
			a[i] = g.between(opts.Min, opts.Max)
		}
	}

	switch p {
	case Sorted:
		sort.Ints(a)
	case Reversed:
		sort.Sort(sort.Reverse(sort.IntSlice(a)))
	case NearlySorted:
		sort.Ints(a)
		swaps := len(a) / 20
		if swaps == 0 && len(a) > 1 {
			swaps = 1
		}
		for k := 0; k < swaps; k++ {
			i, j := g.rng.Intn(len(a)), g.rng.Intn(len(a))
			a[i], a[j] = a[j], a[i]
		}
	}
	return a, nil
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) levels(lo, hi, n int) []int {
	out := make([]int, n)
	for i := range out {
		if n == 1 {
			out[i] = lo
			continue
		}
		out[i] = lo + (hi-lo)*i/(n-1)
	}
	return out
}

// ClampSize bounds n to the interactive size range.
func ClampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}
