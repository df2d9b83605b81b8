package notebook

import (
	"strconv"
	"strings"
)

// Float64 coerces an untyped JSON value to a float64. It accepts JSON
// numbers, integer types, and numeric strings; ok is false for anything
// that cannot be coerced.
func Float64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// FloatOr coerces v to a float64, returning def when coercion fails.
func FloatOr(v any, def float64) float64 {
	if f, ok := Float64(v); ok {
		return f
	}
	return def
}

// Int coerces an untyped JSON value to an int, truncating fractional
// numbers the way a numeric cast would.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// String returns v as a string when it is one.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// StringOr returns v as a string, or def when v is not a string or is empty.
func StringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Map returns v as a map, or an empty map when v is absent or of another
// type, so lookups on missing structures stay nil-safe.
func Map(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Slice returns v as a slice, or nil when v is absent or of another type.
func Slice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// Text normalizes a notebook content value to a single string. Notebook
// documents store text either as one string or pre-split into an ordered
// list of fragments; lists are concatenated in order. Non-string fragments
// and non-text values yield nothing.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		var sb strings.Builder
		for _, frag := range t {
			if s, ok := frag.(string); ok {
				sb.WriteString(s)
			}
		}
		return sb.String()
	}
	return ""
}
