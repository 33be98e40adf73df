// Package claimjson adapts Go's encoding/json to the contract a JOSE claim
// set needs: duplicate-key rejection on parse, deterministic sorted-key
// dumps, a pretty form for diagnostics, and the string/int claim accessors
// together with the coercion and sentinel behavior documented for them.
package claimjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalid is returned for malformed JSON or a JSON value that isn't an
// object at the root.
var ErrInvalid = errors.New("invalid claim JSON")

// ErrDuplicateKey is returned by Parse when an object contains the same key
// more than once. Go's json package silently lets the last occurrence win;
// a claim set must not.
var ErrDuplicateKey = errors.New("duplicate claim key")

// Object is a parsed JSON object: claim names to arbitrary JSON values.
type Object map[string]any

// Parse decodes data as a JSON object, rejecting any object (at any depth)
// that repeats a key.
func Parse(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("%w: root value is not an object", ErrInvalid)
	}

	// Trailing garbage after the object is also malformed input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalid)
	}

	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (Object, error) {
	obj := Object{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("non-string object key %v", keyTok)
		}

		if _, exists := obj[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

// Dump serializes o to JSON. Keys are always emitted in sorted order (as
// required for deterministic payload encoding) — which is what
// encoding/json already does for a map[string]any, so there is no separate
// sorting step. When pretty is true the output uses a 4-space indent;
// otherwise it is fully compact.
func Dump(o Object, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(o, "", "    ")
	}
	return json.Marshal(o)
}

// GetString returns the named claim's value as a string. If the claim is
// absent, ok is false. If the claim is present but not a JSON string, its
// value is coerced via a compact JSON dump — a documented oddity preserved
// from the library this adapter is modeled on, not a bug.
func GetString(o Object, key string) (val string, ok bool) {
	v, present := o[key]
	if !present {
		return "", false
	}

	if s, isStr := v.(string); isStr {
		return s, true
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// GetInt returns the named claim's value as an int64. It returns the
// sentinel -1 both when the claim is absent and when its value is not an
// integer — callers that must distinguish the two cases should check
// presence separately (e.g. via Has).
func GetInt(o Object, key string) int64 {
	v, ok := o[key]
	if !ok {
		return -1
	}

	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return -1
		}
		return i
	case float64:
		if n != math.Trunc(n) {
			return -1
		}
		return int64(n)
	case int64:
		return n
	default:
		return -1
	}
}

// Has reports whether key is present in o, regardless of its value's type.
func Has(o Object, key string) bool {
	_, ok := o[key]
	return ok
}

// Merge overwrites into into with every key from from (the "bulk import"
// policy: existing keys are replaced, unlike the add-once grant API).
func Merge(into Object, from Object) {
	for k, v := range from {
		into[k] = v
	}
}

// DeepCopy recursively copies a decoded JSON value (Object, []any, or a
// scalar) so the result shares no mutable state with v.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case Object:
		cp := make(Object, len(val))
		for k, e := range val {
			cp[k] = DeepCopy(e)
		}
		return cp
	case map[string]any:
		cp := make(Object, len(val))
		for k, e := range val {
			cp[k] = DeepCopy(e)
		}
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, e := range val {
			cp[i] = DeepCopy(e)
		}
		return cp
	default:
		return val
	}
}
