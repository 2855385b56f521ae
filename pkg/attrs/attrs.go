// Package attrs provides the attribute maps attached to graphs, nodes and edges.
//
// A [Map] is an ordered string-to-string mapping. Every value inserted into it
// is converted to its string form at insertion time, so a map built from
// numbers and booleans reaches the renderer as plain strings:
//
//	m := attrs.From(attrs.A{"label": "BAR", "penwidth": 1.5})
//	m.Get("penwidth") // "1.5", true
//
// No validation of Graphviz attribute names or values is performed. Invalid
// attributes pass through and surface as renderer errors.
package attrs

import (
	"fmt"
	"maps"
	"slices"
)

// A is the loose input form of an attribute set: arbitrary values keyed by
// attribute name. It is converted with [From].
type A map[string]any

// Map is an ordered attribute map with string keys and string values.
// Keys keep the position of their first insertion. A nil *Map reads as empty.
type Map struct {
	keys   []string
	values map[string]string
}

// New returns an empty map.
func New() *Map {
	return &Map{values: make(map[string]string)}
}

// From builds a map from a. Keys are inserted in sorted order so the result
// does not depend on Go's map iteration order.
func From(a A) *Map {
	m := New()
	for _, k := range slices.Sorted(maps.Keys(a)) {
		m.Set(k, a[k])
	}
	return m
}

// Pairs builds a map from alternating key/value arguments, in argument order.
// A trailing key without a value is stored with an empty value.
func Pairs(kv ...any) *Map {
	m := New()
	for i := 0; i < len(kv); i += 2 {
		var v any = ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		m.Set(String(kv[i]), v)
	}
	return m
}

// String converts an arbitrary attribute key or value to its string form.
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Set stores the stringified value under key.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = String(value)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (m *Map) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Pop removes key and returns its value.
func (m *Map) Pop(key string) (string, bool) {
	v, ok := m.Get(key)
	if ok {
		m.Delete(key)
	}
	return v, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(key, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	c := New()
	m.Each(func(k, v string) { c.Set(k, v) })
	return c
}

// Merge copies every entry of other into m. Values from other win.
func (m *Map) Merge(other *Map) *Map {
	other.Each(func(k, v string) { m.Set(k, v) })
	return m
}

// ToMap returns the entries as a plain Go map.
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	m.Each(func(k, v string) { out[k] = v })
	return out
}

// String formats m like a Go map literal in insertion order, for debugging.
func (m *Map) String() string {
	buf := []byte{'{'}
	i := 0
	m.Each(func(k, v string) {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "%s=%q", k, v)
		i++
	})
	return string(append(buf, '}'))
}
