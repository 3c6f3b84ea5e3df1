package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ordered is a string-keyed mapping that remembers insertion order. It
// marshals to a plain JSON object and restores key order when unmarshaled,
// so category rankings keep their declared priority order across a
// save/load round trip. The zero value is an empty, ready-to-use mapping.
type Ordered[V any] struct {
	keys []string
	vals map[string]V
}

// Set inserts or replaces the value for key. A new key is appended to the
// iteration order; an existing key keeps its position.
func (o *Ordered[V]) Set(key string, val V) {
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

// Get returns the value for key and whether it was present.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	return o.keys
}

// Len returns the number of stored keys.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// MarshalJSON writes the mapping as a JSON object in insertion order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the key order of the
// document.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ordered: expected JSON object, got %v", tok)
	}
	o.keys = nil
	o.vals = make(map[string]V)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("ordered: expected string key, got %v", kt)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		o.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
