// Package model builds content models from schema fields, supplies defaults
// for missing values and prunes empty values before a model is persisted.
package model

import (
	"reflect"
	"time"

	"github.com/pagescms/cli/internal/schema"
)

// Model maps field names to values. Values are scalars, nested Models for
// object fields, or []any for list fields. It is an alias so models can be
// handed to code that works on plain map[string]any trees.
type Model = map[string]any

// Clock returns the current time. Date defaults are computed from it.
type Clock func() time.Time

// DateLayout is the format of date defaults.
const DateLayout = "2006-01-02"

// Builder creates models. The zero value is not usable; call NewBuilder.
type Builder struct {
	now Clock
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the wall clock used for date defaults.
func WithClock(c Clock) Option {
	return func(b *Builder) {
		if c != nil {
			b.now = c
		}
	}
}

// NewBuilder returns a Builder reading local wall-clock time unless a clock
// is supplied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var std = NewBuilder()

// CreateModel builds a model with the system clock. See Builder.CreateModel.
func CreateModel(fields []schema.Field, content map[string]any) Model {
	return std.CreateModel(fields, content)
}

// DefaultValue computes a default with the system clock. See Builder.DefaultValue.
func DefaultValue(f schema.Field) any {
	return std.DefaultValue(f)
}

// CreateModel returns a new model holding one key per field, in schema order.
//
// A non-list field takes content[name] verbatim when the key is present,
// whatever the value (nil, false, 0 and "" included), and its default
// otherwise. A list field maps each element of a non-empty content sequence,
// building nested models for object elements; a missing, empty or
// non-sequence value yields a one-element list holding the field default.
//
// content is never modified and may be nil.
func (b *Builder) CreateModel(fields []schema.Field, content map[string]any) Model {
	m := make(Model, len(fields))
	for _, f := range fields {
		if f.List {
			m[f.Name] = b.listValue(f, content[f.Name])
			continue
		}
		if v, ok := content[f.Name]; ok {
			m[f.Name] = v
			continue
		}
		m[f.Name] = b.DefaultValue(f)
	}
	return m
}

func (b *Builder) listValue(f schema.Field, raw any) []any {
	items, ok := asSlice(raw)
	if !ok || len(items) == 0 {
		return []any{b.DefaultValue(f)}
	}

	out := make([]any, len(items))
	for i, item := range items {
		if f.IsObject() {
			nested, _ := asMap(item)
			out[i] = b.CreateModel(f.Fields, nested)
			continue
		}
		out[i] = item
	}
	return out
}

// DefaultValue returns the default for a single field, ignoring List.
//
// An explicit default is returned as is, without copying. Otherwise objects
// get a fully defaulted nested model, booleans false, dates today's date in
// the builder clock's location formatted as YYYY-MM-DD, and every other type
// the empty string.
func (b *Builder) DefaultValue(f schema.Field) any {
	if f.HasDefault {
		return f.Default
	}
	switch f.Type {
	case schema.TypeObject:
		return b.CreateModel(f.Fields, nil)
	case schema.TypeBoolean:
		return false
	case schema.TypeDate:
		return b.now().Format(DateLayout)
	default:
		return ""
	}
}

// asSlice views v as a sequence. Typed slices coming from Go callers are
// copied into []any.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	case []Model:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap views v as a string-keyed mapping.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
