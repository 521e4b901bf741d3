package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Index is a JSON object decoded with its key order preserved. The order is
// the dataset's natural key order, which decides the fallback choice when a
// selection has to be reset.
type Index[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// Set adds or replaces key. New keys go to the end.
func (ix *Index[V]) Set(key string, v V) {
	if ix.m == nil {
		ix.m = orderedmap.New[string, V]()
	}
	ix.m.Set(key, v)
}

// Get returns the entry for key.
func (ix Index[V]) Get(key string) (V, bool) {
	if ix.m == nil {
		var zero V
		return zero, false
	}
	return ix.m.Get(key)
}

// Has reports whether key is present.
func (ix Index[V]) Has(key string) bool {
	_, ok := ix.Get(key)
	return ok
}

// Len returns the number of entries.
func (ix Index[V]) Len() int {
	if ix.m == nil {
		return 0
	}
	return ix.m.Len()
}

// Keys returns the keys in document order.
func (ix Index[V]) Keys() []string {
	if ix.m == nil {
		return nil
	}
	keys := make([]string, 0, ix.m.Len())
	for p := ix.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// UnmarshalJSON decodes an object. null and [] decode to an empty Index; any
// other non-object value is an error.
func (ix *Index[V]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.Equal(trimmed, []byte("null")), isEmptyArray(trimmed):
		ix.m = nil
		return nil
	case len(trimmed) == 0 || trimmed[0] != '{':
		return fmt.Errorf("decode ordered object: expected a JSON object, got %.20s", trimmed)
	}
	m := orderedmap.New[string, V]()
	if err := json.Unmarshal(b, m); err != nil {
		return fmt.Errorf("decode ordered object: %w", err)
	}
	ix.m = m
	return nil
}

// isEmptyArray reports whether b is the JSON array [].
func isEmptyArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	if len(b) < 2 || b[0] != '[' || b[len(b)-1] != ']' {
		return false
	}
	return len(bytes.TrimSpace(b[1:len(b)-1])) == 0
}

func (ix Index[V]) MarshalJSON() ([]byte, error) {
	if ix.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(ix.m)
}
