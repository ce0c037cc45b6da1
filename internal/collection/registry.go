package collection

import "hrdesk/internal/domain"

// Predicate decides whether a record passes a categorical filter.
type Predicate func(domain.Record) bool

// Registry maps filter keys to Predicate implementations. Each screen domain
// registers its fixed set of filters; an unknown key means "all".
type Registry struct {
	predicates map[string]Predicate
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{predicates: make(map[string]Predicate)}
}

// Register adds a predicate under the given filter key.
func (r *Registry) Register(key string, p Predicate) {
	r.predicates[key] = p
}

// Get returns the predicate for a filter key, or nil if not registered.
func (r *Registry) Get(key string) Predicate {
	if r == nil {
		return nil
	}
	return r.predicates[key]
}

// Keys returns the registered filter keys.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.predicates))
	for k := range r.predicates {
		out = append(out, k)
	}
	return out
}
