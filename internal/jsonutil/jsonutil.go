// Package jsonutil holds the JSON encoding helpers shared by the ordered
// blocks of the template. Every helper leaves <, > and & unescaped so nested
// objects match the top-level artifact encoder.
package jsonutil

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into \u003c, etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalOrdered writes om as a JSON object in insertion order.
// OrderedMap.MarshalJSON runs json.Marshal on every value, which escapes HTML
// characters; this writer does not.
func MarshalOrdered[V any](om *orderedmap.OrderedMap[string, V]) ([]byte, error) {
	if om == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := MarshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := MarshalNoEscape(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
