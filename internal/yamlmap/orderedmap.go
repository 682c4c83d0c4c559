// Package yamlmap provides a minimal insertion-ordered map.
//
// The Mihomo kernel's YAML parser is sensitive to field order in proxy and
// proxy-group bodies (see SPEC_FULL.md §4.5). None of this module's
// dependencies ship an ordered-map type, so this is the one place the
// composer falls back to a small hand-rolled structure rather than a
// third-party library (see DESIGN.md).
package yamlmap

// Entry is a single key/value pair in an OrderedMap.
type Entry struct {
	Key   string
	Value any
}

// OrderedMap is a slice of key/value pairs that preserves insertion order,
// used everywhere the composer needs "emit these fields in this order"
// rather than a Go map's unspecified iteration order.
type OrderedMap struct {
	entries []Entry
}

// New builds an OrderedMap, optionally pre-populated.
func New(entries ...Entry) *OrderedMap {
	return &OrderedMap{entries: entries}
}

// Set appends a key/value pair. Callers are responsible for not
// duplicating keys; Set never deduplicates, since emission order is
// caller-controlled by construction order, not by key identity.
func (m *OrderedMap) Set(key string, value any) *OrderedMap {
	m.entries = append(m.entries, Entry{Key: key, Value: value})
	return m
}

// SetIf appends key/value only when cond holds, a convenience for the many
// "omit this field when empty" rules the composer enforces.
func (m *OrderedMap) SetIf(cond bool, key string, value any) *OrderedMap {
	if cond {
		m.Set(key, value)
	}
	return m
}

// Entries returns the ordered key/value pairs.
func (m *OrderedMap) Entries() []Entry {
	return m.entries
}

// Len reports the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.entries)
}
