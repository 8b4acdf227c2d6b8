// Package coerce turns loosely typed values (attribute strings, decoded JSON)
// into objects and lists. In permissive mode a value that does not fit yields
// nil; in strict mode it yields an apperr warning.
package coerce

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ppiankov/phoneinput/internal/apperr"
)

// IsObject reports whether v is a map or a slice, the shapes JSON objects and
// arrays decode into.
func IsObject(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// Audit renders v for diagnostics: objects as JSON, strings quoted, anything else via fmt.
func Audit(v any) string {
	if IsObject(v) {
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprint(v)
}

// decode returns v as is when it is already an object, parses it when it is
// a string, and returns nil for anything else.
func decode(v any, strict bool) (any, error) {
	if IsObject(v) {
		return v, nil
	}

	s, ok := v.(string)
	if !ok {
		return nil, nil
	}

	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		if strict {
			return nil, apperr.WrapWarning("cannot parse "+Audit(v), err)
		}
		return nil, nil
	}
	return out, nil
}

// EnsureObject returns v as a string-keyed map. Strings are parsed as JSON.
// Unparseable strings are an error only in strict mode.
func EnsureObject(v any, strict bool) (map[string]any, error) {
	decoded, err := decode(v, strict)
	if err != nil {
		return nil, err
	}
	if m, ok := decoded.(map[string]any); ok {
		return m, nil
	}
	return nil, nil
}

// EnsureArray returns v as a list. Strings are parsed as JSON. A value that
// is not a list is a NotAnArrayWarning in strict mode.
func EnsureArray(v any, strict bool) ([]any, error) {
	decoded, err := decode(v, strict)
	if err != nil {
		return nil, err
	}

	switch list := decoded.(type) {
	case []any:
		return list, nil
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, nil
	}

	if strict {
		return nil, apperr.NotAnArray(Audit(v))
	}
	return nil, nil
}
