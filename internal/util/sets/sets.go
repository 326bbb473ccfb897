// Package sets provides small generic set types.
package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is a set that remembers insertion order. Membership is a map
// lookup; Values returns elements in the order they were first added.
type Ordered[T comparable] struct {
	index  Set[T]
	values []T
}

// NewOrdered creates an ordered set from vals, dropping repeats.
func NewOrdered[T comparable](vals ...T) *Ordered[T] {
	o := &Ordered[T]{index: make(Set[T], len(vals))}
	for _, v := range vals {
		o.Add(v)
	}
	return o
}

// Add appends v unless it is already present. It reports whether v was added.
func (o *Ordered[T]) Add(v T) bool {
	if o.index.Has(v) {
		return false
	}
	o.index.Add(v)
	o.values = append(o.values, v)
	return true
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool { return o.index.Has(v) }

// Len returns the number of elements.
func (o *Ordered[T]) Len() int { return len(o.values) }

// Values returns the elements in insertion order. The slice is a copy.
func (o *Ordered[T]) Values() []T {
	out := make([]T, len(o.values))
	copy(out, o.values)
	return out
}
