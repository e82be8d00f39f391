package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	oerrors "github.com/pagescms/cli/internal/errors"
)

func TestFieldUnmarshal_Defaults(t *testing.T) {
	var f Field
	require.NoError(t, json.Unmarshal([]byte(`{"name":"title"}`), &f))

	assert.Equal(t, "title", f.Name)
	assert.Equal(t, TypeString, f.Type, "type defaults to string")
	assert.False(t, f.List)
	assert.False(t, f.HasDefault)
}

func TestFieldUnmarshal_DefaultPresence(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHas     bool
		wantDefault any
	}{
		{name: "absent", input: `{"name":"a"}`, wantHas: false, wantDefault: nil},
		{name: "explicit null", input: `{"name":"a","default":null}`, wantHas: true, wantDefault: nil},
		{name: "false", input: `{"name":"a","type":"boolean","default":false}`, wantHas: true, wantDefault: false},
		{name: "empty string", input: `{"name":"a","default":""}`, wantHas: true, wantDefault: ""},
		{name: "number", input: `{"name":"a","default":3}`, wantHas: true, wantDefault: float64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.wantHas, f.HasDefault)
			assert.Equal(t, tt.wantDefault, f.Default)
		})
	}
}

func TestFieldUnmarshal_ListForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "true", input: `{"name":"tags","list":true}`, want: true},
		{name: "false", input: `{"name":"tags","list":false}`, want: false},
		{name: "null", input: `{"name":"tags","list":null}`, want: false},
		{name: "options object", input: `{"name":"tags","list":{"min":1,"max":3}}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.want, f.List)
		})
	}

	var f Field
	err := json.Unmarshal([]byte(`{"name":"tags","list":"yes"}`), &f)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestFieldUnmarshal_ObjectInvariant(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "object without fields",
			input:   `{"name":"author","type":"object"}`,
			wantErr: "non-empty fields list",
		},
		{
			name:    "object with empty fields",
			input:   `{"name":"author","type":"object","fields":[]}`,
			wantErr: "non-empty fields list",
		},
		{
			name:    "scalar with fields",
			input:   `{"name":"title","type":"string","fields":[{"name":"x"}]}`,
			wantErr: "cannot declare nested fields",
		},
		{
			name:    "missing name",
			input:   `{"type":"string"}`,
			wantErr: "name is required",
		},
		{
			name:    "nested invalid",
			input:   `{"name":"author","type":"object","fields":[{"name":"links","type":"object"}]}`,
			wantErr: `"links"`,
		},
		{
			name:    "duplicate nested",
			input:   `{"name":"author","type":"object","fields":[{"name":"x"},{"name":"x"}]}`,
			wantErr: "duplicate nested field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			err := json.Unmarshal([]byte(tt.input), &f)
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFieldUnmarshal_NestedFromYAML(t *testing.T) {
	doc := `
name: author
type: object
list: true
fields:
  - name: name
  - name: active
    type: boolean
    default: true
`
	var f Field
	require.NoError(t, yaml.Unmarshal([]byte(doc), &f))

	assert.True(t, f.IsObject())
	assert.True(t, f.List)
	require.Len(t, f.Fields, 2)
	assert.Equal(t, TypeString, f.Fields[0].Type)
	assert.True(t, f.Fields[1].HasDefault)
	assert.Equal(t, true, f.Fields[1].Default)
}

func TestFieldMarshal_KeepsNullDefault(t *testing.T) {
	f := NewField("subtitle", TypeString).WithDefault(nil)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"default":null`)

	var back Field
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.HasDefault)
	assert.Nil(t, back.Default)
}

func TestConstructors(t *testing.T) {
	_, err := NewObject("empty")
	assert.ErrorIs(t, err, oerrors.ErrValidation)

	obj := MustObject("seo", NewField("title", ""), NewField("index", TypeBoolean))
	assert.True(t, obj.IsObject())
	assert.Equal(t, TypeString, obj.Fields[0].Type)

	list := NewField("tags", TypeString).AsList()
	assert.True(t, list.List)

	assert.Panics(t, func() { MustObject("broken") })
}
