package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/oplog"
)

// ErrUnknownAlgorithm is returned for names missing from the registry.
var ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")

// SortFunc sorts a in place while recording operations into b.
type SortFunc func(a []int, b *oplog.Builder)

// Info describes a registered algorithm for menus and help output.
type Info struct {
	Name        string
	Description string
	Complexity  string
}

type entry struct {
	info Info
	fn   SortFunc
}

// Registry maps algorithm names to their instrumented implementations.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns a registry holding the five built-in sorts.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	r.Register(Info{Name: "bubble", Description: "adjacent swaps, largest sinks", Complexity: "O(n²)"}, Bubble)
	r.Register(Info{Name: "insertion", Description: "shift right, drop key into gap", Complexity: "O(n²)"}, Insertion)
	r.Register(Info{Name: "selection", Description: "pick minimum of the suffix", Complexity: "O(n²)"}, Selection)
	r.Register(Info{Name: "merge", Description: "split, sort halves, merge", Complexity: "O(n log n)"}, Merge)
	r.Register(Info{Name: "quick", Description: "Lomuto partition on last element", Complexity: "O(n log n) avg"}, Quick)
	return r
}

// Register adds or replaces an algorithm.
func (r *Registry) Register(info Info, fn SortFunc) {
	r.entries[info.Name] = entry{info: info, fn: fn}
}

// Get returns the sort registered under name.
func (r *Registry) Get(name string) (SortFunc, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return e.fn, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// List returns registered names in canonical order: built-ins first in the
// order they were introduced, then any extras alphabetically.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.entries))
	for _, name := range builtinOrder {
		if _, ok := r.entries[name]; ok {
			names = append(names, name)
		}
	}
	extra := make([]string, 0)
	for name := range r.entries {
		if !isBuiltin(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Describe returns the Info for name.
func (r *Registry) Describe(name string) (Info, bool) {
	e, ok := r.entries[name]
	return e.info, ok
}

// Generate copies snapshot, runs the named sort against the copy and seals
// the resulting log with a MarkSorted over every position.
func (r *Registry) Generate(name string, snapshot []int) (*oplog.Log, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	work := make([]int, len(snapshot))
	copy(work, snapshot)

	b := oplog.NewBuilder(estimate(len(snapshot)))
	fn(work, b)
	return b.Finish(name, len(snapshot)), nil
}

var builtinOrder = []string{"bubble", "insertion", "selection", "merge", "quick"}

func isBuiltin(name string) bool {
	for _, b := range builtinOrder {
		if b == name {
			return true
		}
	}
	return false
}

// estimate is a capacity hint; quadratic sorts on random input land near
// n²/2 operations.
func estimate(n int) int {
	if n > 256 {
		return n * 16
	}
	return n*n/2 + 1
}

var defaultRegistry = NewRegistry()

// Generate uses the built-in registry.
func Generate(name string, snapshot []int) (*oplog.Log, error) {
	return defaultRegistry.Generate(name, snapshot)
}

// Names lists the built-in algorithm names.
func Names() []string {
	return defaultRegistry.List()
}

// Default returns the shared built-in registry.
func Default() *Registry {
	return defaultRegistry
}
