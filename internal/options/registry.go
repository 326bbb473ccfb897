package options

import "slices"

// Registry stores option definitions keyed by Key, remembering the order in
// which keys were first registered.
//
// Registering an existing key overwrites its definition and keeps its original
// position, so a builder may extend or replace the host's defaults.
type Registry struct {
	order []string
	defs  map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register merges defs into the registry and returns it for chaining.
// Definitions with an empty key are ignored.
func (r *Registry) Register(defs ...Definition) *Registry {
	for _, def := range defs {
		if def.Key == "" {
			continue
		}
		if _, exists := r.defs[def.Key]; !exists {
			r.order = append(r.order, def.Key)
		}
		r.defs[def.Key] = def.resolve()
	}
	return r
}

// Get returns the definition registered for key.
func (r *Registry) Get(key string) (Definition, bool) {
	def, ok := r.defs[key]
	return def, ok
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.defs[key]
	return ok
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.defs[key])
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.order) }

// Group is a named run of definitions sharing a presentation group.
type Group struct {
	Name        string
	Definitions []Definition
}

// Groups returns definitions grouped by their Group label. Groups appear in
// the order their first member was registered; ungrouped options come last
// under an empty name.
func (r *Registry) Groups() []Group {
	var (
		groups    []Group
		index     = make(map[string]int)
		ungrouped []Definition
	)
	for _, def := range r.All() {
		if def.Group == "" {
			ungrouped = append(ungrouped, def)
			continue
		}
		i, ok := index[def.Group]
		if !ok {
			i = len(groups)
			index[def.Group] = i
			groups = append(groups, Group{Name: def.Group})
		}
		groups[i].Definitions = append(groups[i].Definitions, def)
	}
	if len(ungrouped) > 0 {
		groups = append(groups, Group{Definitions: ungrouped})
	}
	return groups
}
