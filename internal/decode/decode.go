// Package decode implements the recursive expansion of raw fragments into
// plain JSON values: numeric fragments resolve through the fragment table,
// ["P", idx] arrays dereference in place, and _<digits> object keys resolve
// to the literal string stored at that slot.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Yogerlan/json-decoder/internal/fragment"
	"github.com/Yogerlan/json-decoder/internal/stack"
)

// DefaultMaxDepth bounds the resolution chain when no limit is configured.
const DefaultMaxDepth = 256

var (
	// ErrAbsentSlot reports a resolved index pointing at a table position
	// never populated by the base array or an override.
	ErrAbsentSlot = errors.New("absent table slot")
	// ErrKeyResolution reports an indirect key whose table slot is not a string.
	ErrKeyResolution = errors.New("indirect key does not resolve to a string")
	// ErrReferenceDepth reports a cyclic fragment reference or a resolution
	// chain deeper than the configured bound.
	ErrReferenceDepth = errors.New("cyclic or too deep reference")
)

var indirectKeyRE = regexp.MustCompile(`^_(\d+)$`)

// Options configures decoding behavior.
type Options struct {
	// MaxDepth bounds recursion and reference chains. Zero or negative
	// selects DefaultMaxDepth.
	MaxDepth int
	// LiteralNumbers passes numeric fragments through unchanged instead of
	// treating them as table indices.
	LiteralNumbers bool
}

// Decoder expands raw fragments against a read-only fragment table.
// A Decoder is single-use per goroutine; create one per decode call.
type Decoder struct {
	table          *fragment.Table
	maxDepth       int
	literalNumbers bool
	chain          *stack.Stack[int]
}

// New creates a Decoder over the given table.
func New(table *fragment.Table, opts Options) *Decoder {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Decoder{
		table:          table,
		maxDepth:       maxDepth,
		literalNumbers: opts.LiteralNumbers,
		chain:          stack.NewWithCapacity[int](maxDepth),
	}
}

// Decode returns the fully expanded form of frag. The table is never
// mutated, so the same input always yields the same output.
func (d *Decoder) Decode(frag any) (any, error) {
	d.chain.Reset()
	return d.decode(frag, 0)
}

func (d *Decoder) decode(frag any, depth int) (any, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("%w: exceeded %d levels (path %v)", ErrReferenceDepth, d.maxDepth, d.chain.ToSlice())
	}

	switch v := frag.(type) {
	case nil, bool, string:
		return v, nil
	case json.Number:
		if d.literalNumbers {
			return v, nil
		}
		raw, err := integerIndex(v)
		if err != nil {
			return nil, err
		}
		index, err := Resolve(raw, d.table.Len())
		if err != nil {
			return nil, err
		}
		return d.deref(index, depth)
	case []any:
		return d.decodeArray(v, depth)
	case fragment.Object:
		return d.decodeObject(v, depth)
	default:
		return nil, fmt.Errorf("unsupported fragment type %T", frag)
	}
}

// deref expands the fragment stored at a resolved table slot. The active
// chain of slots guards against reference cycles, which the input format
// does not forbid.
func (d *Decoder) deref(index int, depth int) (any, error) {
	if stack.Contains(d.chain, index) {
		return nil, fmt.Errorf("%w: cycle through slot %d (path %v)", ErrReferenceDepth, index, d.chain.ToSlice())
	}
	slot, ok := d.table.Get(index)
	if !ok {
		return nil, fmt.Errorf("%w: slot %d (path %v)", ErrAbsentSlot, index, d.chain.ToSlice())
	}

	d.chain.Push(index)
	defer d.chain.Pop()

	return d.decode(slot, depth+1)
}

func (d *Decoder) decodeArray(arr []any, depth int) (any, error) {
	if index, ok := pointerIndex(arr); ok {
		raw, err := integerIndex(index)
		if err != nil {
			return nil, err
		}
		resolved, err := Resolve(raw, d.table.Len())
		if err != nil {
			return nil, err
		}
		// The pointer array contributes the referenced value, not a
		// 2-element array.
		return d.deref(resolved, depth)
	}

	out := make([]any, len(arr))
	for i, elem := range arr {
		decoded, err := d.decode(elem, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = decoded
	}
	return out, nil
}

// pointerIndex recognizes the ["P", idx] marker: exactly two elements, the
// literal string "P" first and a number second.
func pointerIndex(arr []any) (json.Number, bool) {
	if len(arr) != 2 {
		return "", false
	}
	marker, ok := arr[0].(string)
	if !ok || marker != "P" {
		return "", false
	}
	index, ok := arr[1].(json.Number)
	return index, ok
}

func (d *Decoder) decodeObject(obj fragment.Object, depth int) (any, error) {
	out := make(fragment.Object, 0, len(obj))
	for _, m := range obj {
		key, err := d.decodeKey(m.Key)
		if err != nil {
			return nil, err
		}
		value, err := d.decode(m.Value, depth+1)
		if err != nil {
			return nil, err
		}
		// Distinct raw keys may resolve to the same decoded key; the last
		// value wins.
		out = out.Set(key, value)
	}
	return out, nil
}

// decodeKey resolves _<digits> keys through the table; the referenced slot
// must hold the literal key string. All other keys are used unchanged.
func (d *Decoder) decodeKey(key string) (string, error) {
	m := indirectKeyRE.FindStringSubmatch(key)
	if m == nil {
		return key, nil
	}

	raw, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: key %q", ErrIndexOutOfRange, key)
	}
	index, err := Resolve(raw, d.table.Len())
	if err != nil {
		return "", fmt.Errorf("key %q: %w", key, err)
	}
	slot, ok := d.table.Get(index)
	if !ok {
		return "", fmt.Errorf("%w: key %q, slot %d", ErrAbsentSlot, key, index)
	}
	literal, ok := slot.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q, slot %d holds %T", ErrKeyResolution, key, index, slot)
	}
	return literal, nil
}
