package model

import (
	"math"
	"reflect"
)

// Sanitize returns a pruned copy of m and whether the copy still has keys.
// m itself is left untouched.
//
// A mapping or sequence value is dropped when it is empty or all of its
// values are falsy; otherwise it is pruned recursively and dropped if nothing
// survives. A scalar value is dropped when it is falsy, except booleans,
// which are always kept.
//
// Sequences are only ever kept or dropped as a whole. Their mapping elements
// are pruned in place, but no element is removed, so positions are stable.
func Sanitize(m Model) (Model, bool) {
	out := make(Model, len(m))
	for k, v := range m {
		if pruned, keep := sanitizeValue(v); keep {
			out[k] = pruned
		}
	}
	return out, len(out) > 0
}

func sanitizeValue(v any) (any, bool) {
	if nested, ok := asMap(v); ok {
		if len(nested) == 0 || allFalsy(mapValues(nested)) {
			return nil, false
		}
		return Sanitize(nested)
	}
	if items, ok := asSlice(v); ok {
		if len(items) == 0 || allFalsy(items) {
			return nil, false
		}
		return sanitizeSlice(items)
	}
	if Falsy(v) {
		_, isBool := v.(bool)
		return v, isBool
	}
	return v, true
}

// sanitizeSlice prunes the mapping elements of items. The slice survives
// while at least one element is a non-empty container or a truthy scalar.
func sanitizeSlice(items []any) ([]any, bool) {
	out := make([]any, len(items))
	keep := false
	for i, item := range items {
		switch {
		case isMap(item):
			nested, _ := asMap(item)
			pruned, nonEmpty := Sanitize(nested)
			out[i] = pruned
			keep = keep || nonEmpty
		case isSlice(item):
			inner, _ := asSlice(item)
			if len(inner) == 0 || allFalsy(inner) {
				out[i] = item
				continue
			}
			pruned, nonEmpty := sanitizeSlice(inner)
			out[i] = pruned
			keep = keep || nonEmpty
		default:
			out[i] = item
			keep = keep || !Falsy(item)
		}
	}
	return out, keep
}

// Falsy reports whether v counts as empty: nil, false, the empty string,
// numeric zero and NaN. Non-nil mappings and sequences are never falsy,
// even when empty.
func Falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0 || math.IsNaN(x)
	case float32:
		return x == 0 || math.IsNaN(float64(x))
	case int:
		return x == 0
	case int64:
		return x == 0
	case uint64:
		return x == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func allFalsy(values []any) bool {
	for _, v := range values {
		if !Falsy(v) {
			return false
		}
	}
	return true
}

func mapValues(m map[string]any) []any {
	out := make([]any, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func isMap(v any) bool {
	_, ok := asMap(v)
	return ok
}

func isSlice(v any) bool {
	_, ok := asSlice(v)
	return ok
}
