package entity

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OrderedMap is a JSON object that remembers the order its keys arrived in.
// The Octav API keys protocols and chains by name; display order and stable
// sorting both depend on the wire order, which a Go map would lose.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap returns an empty map ready for Set.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores v under key. A new key goes to the end; an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in wire order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in wire order.
func (m *OrderedMap[V]) Each(fn func(key string, v V)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// UnmarshalJSON reads a JSON object keeping key order. null leaves the map empty.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = make(map[string]V)

	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		var v V
		it.ReadVal(&v)
		if it.Error != nil {
			return false
		}
		m.Set(key, v)
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	return nil
}

// MarshalJSON writes the entries in wire order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range m.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(m.values[k])
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
