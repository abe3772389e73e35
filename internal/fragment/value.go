// Package fragment provides the raw JSON value model and the fragment table
// used by the decoder. Values are parsed into plain Go types (nil, bool,
// json.Number, string, []any) except objects, which use an order-preserving
// representation so decoded output follows source member order.
package fragment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrParse is the sentinel error for all fragment parsing failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrParse = errors.New("fragment parse error")

// Member is a single key/value pair of an Object. The key is the raw source
// key; indirect-key resolution happens during decoding, not parsing.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object whose members keep source order. Duplicate raw
// keys are preserved as parsed; deduplication is a decoding concern since
// two distinct raw keys may resolve to the same decoded key.
type Object []Member

// Set appends or replaces the member with the given key, keeping the
// position of an existing member (last value wins, first position wins).
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Member{Key: key, Value: value})
}

// Get returns the value for key and whether the key is present. For
// duplicate raw keys the first occurrence is returned.
func (o Object) Get(key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders members in source order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Parse decodes a single JSON value from data into the fragment value model.
// Numbers are kept as json.Number so index resolution can reject fractional
// values without float rounding. Trailing non-whitespace content is an error.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := parseValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content after JSON value", ErrParse)
	}

	return value, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// Scalar: nil, bool, json.Number or string.
		return tok, nil
	}

	switch delim {
	case '[':
		return parseArray(dec)
	case '{':
		return parseObject(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrParse, delim.String())
	}
}

func parseArray(dec *json.Decoder) ([]any, error) {
	elems := make([]any, 0)
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return elems, nil
}

func parseObject(dec *json.Decoder) (Object, error) {
	obj := make(Object, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrParse)
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return obj, nil
}

// Plain converts a fragment value tree into ordinary Go JSON types:
// Object becomes map[string]any and json.Number becomes int64 or float64.
// Member order is lost, so Plain is only used where order does not matter,
// such as JSONPath selection.
func Plain(value any) any {
	switch v := value.(type) {
	case json.Number:
		return PlainNumber(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Plain(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(v))
		for _, m := range v {
			out[m.Key] = Plain(m.Value)
		}
		return out
	default:
		return v
	}
}

// PlainNumber converts a json.Number to int64 when integral, float64
// otherwise. Numbers that fit neither are returned as their raw string.
func PlainNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
