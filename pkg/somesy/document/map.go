package document

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the insertion-ordered mapping node used for nested objects in
// all Document backends. Iteration and JSON serialization follow
// insertion order, which keeps rewritten files diff-friendly.
type Map = orderedmap.OrderedMap[string, interface{}]

// NewMap returns an empty ordered mapping node.
func NewMap() *Map {
	return orderedmap.New[string, interface{}]()
}

// MapKeys returns the keys of m in insertion order.
func MapKeys(m *Map) []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// MapGet returns the value for key, or false if absent or m is nil.
func MapGet(m *Map, key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	return m.Get(key)
}

// GetString returns the value for key as a string, or "" if the key is
// absent or not a string.
func GetString(m *Map, key string) string {
	v, ok := MapGet(m, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
