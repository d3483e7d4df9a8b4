package mirror

import "github.com/vango-dev/svgmirror/pkg/dom"

// Registry pairs authoring elements with their presentation elements.
//
// Entries are keyed by the authoring element's ID rather than its pointer,
// so the registry never keeps a detached authoring element reachable.
// Entries are removed explicitly when the authoring element is detached.
type Registry struct {
	pairs map[uint64]*dom.Element
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pairs: make(map[uint64]*dom.Element)}
}

// Set pairs a with p, replacing any previous pair.
func (r *Registry) Set(a, p *dom.Element) {
	r.pairs[a.ID()] = p
}

// Get returns the presentation element paired with a.
func (r *Registry) Get(a *dom.Element) (*dom.Element, bool) {
	if a == nil {
		return nil, false
	}
	p, ok := r.pairs[a.ID()]
	return p, ok
}

// Delete removes a's pair and reports whether there was one.
func (r *Registry) Delete(a *dom.Element) bool {
	if _, ok := r.pairs[a.ID()]; !ok {
		return false
	}
	delete(r.pairs, a.ID())
	return true
}

// Len returns the number of pairs.
func (r *Registry) Len() int {
	return len(r.pairs)
}

// Clear removes every pair.
func (r *Registry) Clear() {
	clear(r.pairs)
}
