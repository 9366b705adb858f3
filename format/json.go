package format

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI is a standard-library-compatible jsoniter configuration; the
// reason jsoniter is used at all (rather than encoding/json) is its lazy
// Any/Get traversal, which lets JSONValue below look up a single key
// without unmarshalling the whole line into a map.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// IsJSONObject reports whether line, ignoring leading whitespace, begins
// with '{'. Lines that are not a JSON object are ignored, per the
// design.
func IsJSONObject(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}

// JSONValue is a typed scalar pulled lazily from a JSON-lines line: a
// string, a number, a bool, or null/missing.
type JSONValue struct {
	any     jsoniter.Any
	present bool
}

// JSONLookup locates key inside a single JSON-lines line without
// decoding the whole object. ok is false if the line is not a JSON
// object or the key is absent or null.
func JSONLookup(line []byte, key string) (JSONValue, bool) {
	if !IsJSONObject(line) {
		return JSONValue{}, false
	}
	root := jsonAPI.Get(line)
	if root.LastError() != nil || root.ValueType() != jsoniter.ObjectValue {
		return JSONValue{}, false
	}
	val := root.Get(key)
	if val.ValueType() == jsoniter.InvalidValue || val.ValueType() == jsoniter.NilValue {
		return JSONValue{}, false
	}
	return JSONValue{any: val, present: true}, true
}

// String returns v's string form: the literal string value for a JSON
// string, or the canonical decimal text for a JSON number, matching the
// design's "numeric keys are normalized to canonical decimal text" rule.
func (v JSONValue) String() string {
	if !v.present {
		return ""
	}
	raw := v.any.ToString()
	if v.any.ValueType() == jsoniter.NumberValue {
		if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return raw
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return raw
}

// Float64 returns v's numeric value. ok is false if v is not present or
// not a number.
func (v JSONValue) Float64() (float64, bool) {
	if !v.present || v.any.ValueType() != jsoniter.NumberValue {
		return 0, false
	}
	return v.any.ToFloat64(), v.any.LastError() == nil
}
