// Package schema defines the content schema types read from the content
// configuration and the lookups that select a schema for a file or type name.
package schema

import (
	"encoding/json"
	"fmt"

	oerrors "github.com/pagescms/cli/internal/errors"
)

// FieldType tags the kind of value a field holds. Tags outside the constants
// below are accepted and treated like strings when defaults are computed.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeObject  FieldType = "object"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
)

// Field describes one schema field.
//
// Fields is only populated for TypeObject, and TypeObject always carries at
// least one nested field. Decoding and the constructors enforce this so the
// model builder never meets an object without children.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Type        FieldType `json:"type,omitempty"`
	List        bool      `json:"list,omitempty"`
	Fields      []Field   `json:"fields,omitempty"`

	// Default overrides the type-based default when HasDefault is set. A
	// declared `default: null` is a present default whose value is nil.
	Default    any  `json:"default,omitempty"`
	HasDefault bool `json:"-"`
}

// FieldError reports a field definition that violates the schema invariants.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid field: %s", e.Message)
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// Unwrap ties field errors to the validation sentinel.
func (e *FieldError) Unwrap() error {
	return oerrors.ErrValidation
}

// NewField returns a scalar field of the given type.
func NewField(name string, typ FieldType) Field {
	if typ == "" {
		typ = TypeString
	}
	return Field{Name: name, Type: typ}
}

// NewObject returns an object field holding the given nested fields.
func NewObject(name string, fields ...Field) (Field, error) {
	f := Field{Name: name, Type: TypeObject, Fields: fields}
	if err := f.check(); err != nil {
		return Field{}, err
	}
	return f, nil
}

// MustObject is NewObject for statically known schemas. It panics on error.
func MustObject(name string, fields ...Field) Field {
	f, err := NewObject(name, fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// AsList returns a copy of f that holds an ordered sequence of values.
func (f Field) AsList() Field {
	f.List = true
	return f
}

// WithDefault returns a copy of f with an explicit default value.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	f.HasDefault = true
	return f
}

// IsObject reports whether the field nests other fields.
func (f Field) IsObject() bool {
	return f.Type == TypeObject
}

// check enforces the local invariants of a single definition. Nested fields
// were already checked when they were decoded or constructed.
func (f Field) check() error {
	if f.Name == "" {
		return &FieldError{Message: "name is required"}
	}
	if f.IsObject() && len(f.Fields) == 0 {
		return &FieldError{Field: f.Name, Message: "object fields require a non-empty fields list"}
	}
	if !f.IsObject() && len(f.Fields) > 0 {
		return &FieldError{Field: f.Name, Message: fmt.Sprintf("type %q cannot declare nested fields", f.Type)}
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for _, child := range f.Fields {
		if _, dup := seen[child.Name]; dup {
			return &FieldError{Field: f.Name, Message: fmt.Sprintf("duplicate nested field %q", child.Name)}
		}
		seen[child.Name] = struct{}{}
	}
	return nil
}

// rawField mirrors Field for decoding. Default and List stay raw so presence
// and the object form of `list` can be detected.
type rawField struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Type        FieldType       `json:"type"`
	List        json.RawMessage `json:"list"`
	Fields      []Field         `json:"fields"`
	Default     json.RawMessage `json:"default"`
}

// UnmarshalJSON decodes a field definition and rejects definitions that break
// the object/fields invariant. `list` accepts a boolean or an options object
// (for example `{min: 1, max: 3}`), the latter meaning true.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Field{
		Name:        raw.Name,
		Label:       raw.Label,
		Description: raw.Description,
		Type:        raw.Type,
		Fields:      raw.Fields,
	}
	if out.Type == "" {
		out.Type = TypeString
	}

	list, err := decodeList(raw.List)
	if err != nil {
		return &FieldError{Field: raw.Name, Message: err.Error()}
	}
	out.List = list

	if raw.Default != nil {
		var def any
		if err := json.Unmarshal(raw.Default, &def); err != nil {
			return &FieldError{Field: raw.Name, Message: fmt.Sprintf("default: %v", err)}
		}
		out.Default = def
		out.HasDefault = true
	}

	if err := out.check(); err != nil {
		return err
	}
	*f = out
	return nil
}

// MarshalJSON writes the definition back, keeping explicit null defaults.
func (f Field) MarshalJSON() ([]byte, error) {
	type plain Field
	if !f.HasDefault {
		return json.Marshal(plain(f))
	}
	return json.Marshal(struct {
		plain
		Default any `json:"default"`
	}{plain: plain(f), Default: f.Default})
}

func decodeList(raw json.RawMessage) (bool, error) {
	if raw == nil {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var opts map[string]any
	if err := json.Unmarshal(raw, &opts); err != nil {
		return false, fmt.Errorf("list must be a boolean or an object")
	}
	return true, nil
}
