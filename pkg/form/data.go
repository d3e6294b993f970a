package form

import "strings"

// Data holds bound values. Keys written through Set are nested by group, so
// Set("a.b.f", v) stores Data{"a": map{"b": map{"f": v}}}. Lookups accept both
// flat dot keys and nested maps.
type Data map[string]any

// Lookup returns the value stored under the dot qualified key.
func (d Data) Lookup(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	if v, ok := d[key]; ok {
		return v, true
	}

	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	sub, ok := asMap(d[head])
	if !ok {
		return nil, false
	}
	return sub.Lookup(rest)
}

// Get returns the value under key or nil.
func (d Data) Get(key string) any {
	v, _ := d.Lookup(key)
	return v
}

// Has reports whether key resolves to a value.
func (d Data) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Set stores v under key, creating intermediate maps as needed.
func (d Data) Set(key string, v any) {
	head, rest, found := strings.Cut(key, ".")
	if !found {
		d[key] = v
		return
	}
	sub, ok := asMap(d[head])
	if !ok {
		sub = Data{}
	}
	d[head] = sub
	sub.Set(rest, v)
}

// Clone returns a deep copy of nested maps. Leaf values are shared.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		if sub, ok := asMap(v); ok {
			out[k] = sub.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

func asMap(v any) (Data, bool) {
	switch m := v.(type) {
	case Data:
		return m, true
	case map[string]any:
		return Data(m), true
	case map[string]string:
		out := make(Data, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// isAssociative reports whether v is a nested mapping that bind may descend into.
func isAssociative(v any) bool {
	_, ok := asMap(v)
	return ok
}
