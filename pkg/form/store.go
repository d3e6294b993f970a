package form

import (
	"slices"
	"strconv"
)

// Store is an ordered key/value holder. Keys keep their insertion order,
// overwriting a key keeps its original position.
type Store[V any] struct {
	keys   []string
	values map[string]V
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{values: make(map[string]V)}
}

// Get returns the value for key and whether it is present.
func (s *Store[V]) Get(key string) (V, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores v under key.
func (s *Store[V]) Set(key string, v V) {
	if s.values == nil {
		s.values = make(map[string]V)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Has reports whether key is present.
func (s *Store[V]) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Erase removes key.
func (s *Store[V]) Erase(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
}

// Def sets key to v only when it is absent and returns the stored value.
func (s *Store[V]) Def(key string, v V) V {
	if cur, ok := s.values[key]; ok {
		return cur
	}
	s.Set(key, v)
	return v
}

// Keys returns the keys in insertion order.
func (s *Store[V]) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the number of entries.
func (s *Store[V]) Len() int {
	return len(s.keys)
}

// Clone returns a shallow copy.
func (s *Store[V]) Clone() *Store[V] {
	c := &Store[V]{
		keys:   slices.Clone(s.keys),
		values: make(map[string]V, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Attributes is the resolved attribute set of a field.
type Attributes struct {
	*Store[string]
}

// NewAttributes creates an empty attribute set.
func NewAttributes() Attributes {
	return Attributes{Store: NewStore[string]()}
}

// String returns the attribute or the empty string.
func (a Attributes) String(key string) string {
	v, _ := a.Get(key)
	return v
}

// Bool reports whether the attribute holds the literal "true".
func (a Attributes) Bool(key string) bool {
	return a.String(key) == "true"
}

// Int parses the attribute as an integer, 0 when absent or malformed.
func (a Attributes) Int(key string) int {
	n, err := strconv.Atoi(a.String(key))
	if err != nil {
		return 0
	}
	return n
}

// Map returns the attributes as a plain map.
func (a Attributes) Map() map[string]string {
	out := make(map[string]string, a.Len())
	for _, k := range a.keys {
		out[k] = a.values[k]
	}
	return out
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	return Attributes{Store: a.Store.Clone()}
}
