package registry

import (
	"fmt"
	"sort"
	"sync"

	"memprobe/internal/domain"
)

// Case is a registered check: a named function the harness can run.
type Case struct {
	domain.Case
	Fn func(*T)
}

// Registry holds named checks grouped into suites. Checks register at
// init time; the harness only ever reads.
type Registry struct {
	mu    sync.Mutex
	cases map[string]Case
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{cases: make(map[string]Case)}
}

// Register adds a check under suite/name. Registering the same name
// twice is a programming error and panics.
func (r *Registry) Register(suite, name string, fn func(*T)) {
	if suite == "" || name == "" || fn == nil {
		panic("registry: suite, name and fn are required")
	}
	c := Case{Case: domain.Case{Suite: suite, Name: name}, Fn: fn}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.cases[c.ID()]; dup {
		panic(fmt.Sprintf("registry: duplicate check %q", c.ID()))
	}
	r.cases[c.ID()] = c
}

// All returns every registered check, sorted by suite then name.
func (r *Registry) All() []Case {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]Case, 0, len(r.cases))
	for _, c := range r.cases {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Suite != all[j].Suite {
			return all[i].Suite < all[j].Suite
		}
		return all[i].Name < all[j].Name
	})
	return all
}

// Suites returns the sorted suite names that have at least one check.
func (r *Registry) Suites() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	for _, c := range r.cases {
		seen[c.Suite] = true
	}
	suites := make([]string, 0, len(seen))
	for s := range seen {
		suites = append(suites, s)
	}
	sort.Strings(suites)
	return suites
}

// Default is the process-wide registry that checks register into from
// their init functions.
var Default = NewRegistry()

// Register adds a check to the default registry.
func Register(suite, name string, fn func(*T)) {
	Default.Register(suite, name, fn)
}
