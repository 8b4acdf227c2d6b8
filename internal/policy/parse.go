package policy

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// parseBool coerces an attribute-style value. Nil yields the default, a bare
// attribute (empty string) means enabled, other strings are true only when
// they read "true", and anything else is judged by truthiness.
func parseBool(v any, def bool) bool {
	switch b := v.(type) {
	case nil:
		return def
	case string:
		if b == "" {
			return true
		}
		return strings.ToLower(strings.TrimSpace(b)) == "true"
	case bool:
		return b
	default:
		return truthy(v)
	}
}

// truthy reports zero numbers (and NaN) as false and every other non-nil value as true.
func truthy(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// parseDisplayFormat accepts exactly "national" or "international".
func parseDisplayFormat(f DisplayFormat) (DisplayFormat, bool) {
	switch f {
	case DisplayNational, DisplayInternational:
		return f, true
	default:
		return "", false
	}
}

// parseStringList accepts a list of strings or a comma separated string.
// Blank entries are dropped; an empty result is rejected.
func parseStringList(v any) ([]string, bool) {
	var out []string

	switch list := v.(type) {
	case []string:
		for _, item := range list {
			if strings.TrimSpace(item) != "" {
				out = append(out, item)
			}
		}
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, item := range strings.Split(list, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	default:
		return nil, false
	}

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// stringify renders any value as text. Lists are comma joined.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []string:
		return strings.Join(s, ",")
	case []any:
		parts := make([]string, len(s))
		for i, item := range s {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
