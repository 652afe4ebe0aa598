package inspector

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// Registry is the catalog of checks loaded at startup.
//
// Checks are appended while rule sets load, then the registry is frozen and
// only read. Configuration never changes a registered check: it works on the
// copies returned by Checks.
type Registry struct {
	mu     sync.RWMutex
	checks []*Check
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a check and returns it, ready to be called directly.
// It panics on an incomplete definition or after Freeze; both are
// programming errors in a rule set.
func (r *Registry) Register(def CheckDef) *Check {
	if def.Name == "" {
		panic("inspector: check registered without a name")
	}
	if def.Func == nil {
		panic(fmt.Sprintf("inspector: check %s has no function", def.Name))
	}
	if !def.Importance.Valid() || def.Importance.IsAdministrative() {
		panic(fmt.Sprintf("inspector: check %s has invalid importance %s", def.Name, def.Importance))
	}
	if def.NeurodataType == "" {
		panic(fmt.Sprintf("inspector: check %s has no neurodata type", def.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("inspector: check %s registered after the registry was frozen", def.Name))
	}

	c := &Check{
		def:        def,
		importance: def.Importance,
		options:    copyOptions(def.Options),
		seq:        len(r.checks),
	}
	r.checks = append(r.checks, c)
	return c
}

// Freeze ends the loading phase. Later calls to Register panic.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Checks returns copies of every registered check, sorted by Order and then
// by registration order.
func (r *Registry) Checks() []*Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Check, len(r.checks))
	for i, c := range r.checks {
		out[i] = c.clone()
	}
	slices.SortStableFunc(out, func(a, b *Check) int {
		return cmp.Compare(a.def.Order, b.def.Order)
	})
	return out
}

// ByName returns copies of every check registered under name.
func (r *Registry) ByName(name string) []*Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Check
	for _, c := range r.checks {
		if c.def.Name == name {
			out = append(out, c.clone())
		}
	}
	return out
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}

// CountByImportance returns how many checks default to each importance.
func (r *Registry) CountByImportance() map[core.Importance]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[core.Importance]int)
	for _, c := range r.checks {
		counts[c.def.Importance]++
	}
	return counts
}
