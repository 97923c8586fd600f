package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON holds a JSON document as an insertion-ordered mapping so that
// rewritten files keep their key order. JSON has no comments, so order
// preservation is all that is needed for diff-friendly output.
type JSON struct {
	root *Map
}

// NewJSON returns an empty JSON document.
func NewJSON() *JSON {
	return &JSON{root: NewMap()}
}

// NewJSONFromMap wraps an existing ordered map as a document.
func NewJSONFromMap(m *Map) *JSON {
	return &JSON{root: m}
}

// LoadJSON parses data into a JSON document. The top level must be an
// object.
func LoadJSON(data []byte) (*JSON, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	root, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("invalid JSON: top level is not an object")
	}
	return &JSON{root: root}, nil
}

// Root returns the underlying ordered map.
func (d *JSON) Root() *Map {
	return d.root
}

// Get implements Document.
func (d *JSON) Get(path []string) (interface{}, bool) {
	if len(path) == 0 {
		return d.root, true
	}
	curr := d.root
	for i, key := range path {
		v, ok := curr.Get(key)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Map)
		if !ok {
			return nil, false
		}
		curr = next
	}
	return nil, false
}

// Set implements Document.
func (d *JSON) Set(path []string, value interface{}) {
	if len(path) == 0 {
		return
	}
	curr := d.root
	for _, key := range path[:len(path)-1] {
		v, ok := curr.Get(key)
		next, isMap := v.(*Map)
		if !ok || !isMap {
			next = NewMap()
			curr.Set(key, next)
		}
		curr = next
	}
	curr.Set(path[len(path)-1], value)
}

// Delete implements Document.
func (d *JSON) Delete(path []string) {
	if len(path) == 0 {
		return
	}
	curr := d.root
	for _, key := range path[:len(path)-1] {
		v, ok := curr.Get(key)
		if !ok {
			return
		}
		next, isMap := v.(*Map)
		if !isMap {
			return
		}
		curr = next
	}
	curr.Delete(path[len(path)-1])
}

// Encode implements Document, using the conventional two-space indent
// and a trailing newline.
func (d *JSON) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeJSONValue reads one JSON value from dec, decoding objects into
// ordered maps to keep key order.
func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			var seq []interface{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return tok, nil
	}
}
