package credentials

import (
	"iter"
	"reflect"
	"slices"
	"sync"
)

// Registry holds extractors by context type.
type Registry struct {
	mu     sync.RWMutex
	byType map[string][]Extractor
	order  []string
	frozen bool
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string][]Extractor)}
}

// Register adds e under each of types, or under TypeAll when none are given.
func (r *Registry) Register(e Extractor, types ...string) error {
	if e == nil {
		return ErrNilExtractor
	}
	if len(types) == 0 {
		types = []string{TypeAll}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}

	for _, typ := range types {
		list, seen := r.byType[typ]
		if !seen {
			r.order = append(r.order, typ)
		}
		if slices.ContainsFunc(list, func(x Extractor) bool { return same(x, e) }) {
			continue
		}
		r.byType[typ] = append(list, e)
	}
	return nil
}

// Freeze ends registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Types returns the registered type labels in first-registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Get yields the extractors for typ followed by the TypeAll extractors.
// Each iteration starts from the beginning.
func (r *Registry) Get(typ string) iter.Seq[Extractor] {
	return func(yield func(Extractor) bool) {
		r.mu.RLock()
		specific := slices.Clone(r.byType[typ])
		var wildcard []Extractor
		if typ != TypeAll {
			wildcard = slices.Clone(r.byType[TypeAll])
		}
		r.mu.RUnlock()

		for _, e := range specific {
			if !yield(e) {
				return
			}
		}
		for _, e := range wildcard {
			if !yield(e) {
				return
			}
		}
	}
}

// Resolve returns the first extractor supporting c, or nil.
func (r *Registry) Resolve(c Context) Extractor {
	if c == nil {
		return nil
	}
	for e := range r.Get(c.Type()) {
		if e.Supports(c) {
			return e
		}
	}
	return nil
}

// same compares extractors by identity; values of non-comparable types are
// never considered equal.
func same(a, b Extractor) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
