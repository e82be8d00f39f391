package filename

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/schema"
)

func fixedClock() model.Clock {
	return func() time.Time {
		return time.Date(2024, time.March, 9, 4, 5, 7, 0, time.UTC)
	}
}

func postEntry() *schema.Entry {
	return &schema.Entry{
		Name: "posts",
		Path: "content/posts",
		Fields: []schema.Field{
			schema.NewField("title", schema.TypeString),
			schema.NewField("slug", schema.TypeString),
			schema.NewField("draft", schema.TypeBoolean),
			schema.NewField("weight", "number"),
			schema.MustObject("author",
				schema.NewField("name", schema.TypeString),
				schema.MustObject("links", schema.NewField("url", schema.TypeString)).AsList(),
			),
			schema.NewField("tags", schema.TypeString).AsList(),
			schema.NewField("author.name", schema.TypeString),
			schema.NewField("tags[1]", schema.TypeString),
		},
	}
}

func TestGenerate_SlugFromFieldsPrefix(t *testing.T) {
	got, err := Generate("{fields.slug}.md", postEntry(), model.Model{"slug": "Café Déjà Vu"})

	require.NoError(t, err)
	assert.Equal(t, "cafe-deja-vu.md", got)
}

func TestGenerate_DatePlaceholders(t *testing.T) {
	g := New(WithClock(fixedClock()))

	got, err := g.Generate("{year}/{month}/{day}/{hour}{minute}{second}-{fields.title}.md", postEntry(), model.Model{"title": "Hello"})

	require.NoError(t, err)
	assert.Equal(t, "2024/03/09/040507-hello.md", got)
}

func TestGenerate_DatePlaceholdersSystemClock(t *testing.T) {
	got, err := Generate("{year}-{month}.md", postEntry(), model.Model{})

	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}\.md$`, got)
}

func TestGenerate_MissingFieldInSchema(t *testing.T) {
	_, err := Generate("{missing}.md", postEntry(), model.Model{})

	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrFieldNotFound)

	var perr *PlaceholderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "missing", perr.Key)
	assert.Equal(t, "field 'missing' not found in schema", err.Error())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		model   model.Model
		wantErr error
		wantKey string
	}{
		{
			name:    "prefixed unknown field",
			pattern: "{fields.nope}",
			model:   model.Model{"nope": "x"},
			wantErr: oerrors.ErrFieldNotFound,
			wantKey: "nope",
		},
		{
			name:    "bare reference is not dotted",
			pattern: "{author.name}",
			model:   model.Model{"author": model.Model{"name": "Ada"}},
			wantErr: oerrors.ErrValueNotFound,
			wantKey: "author.name",
		},
		{
			name:    "nested path of object field is not declared",
			pattern: "{fields.author.links[0].url}",
			model:   model.Model{"author": model.Model{"links": []any{model.Model{"url": "x"}}}},
			wantErr: oerrors.ErrFieldNotFound,
			wantKey: "author.links[0].url",
		},
		{
			name:    "index into declared list is not declared",
			pattern: "{fields.tags[0]}",
			model:   model.Model{"tags": []any{"go"}},
			wantErr: oerrors.ErrFieldNotFound,
			wantKey: "tags[0]",
		},
		{
			name:    "declared field without value",
			pattern: "{title}",
			model:   model.Model{},
			wantErr: oerrors.ErrValueNotFound,
			wantKey: "title",
		},
		{
			name:    "missing intermediate segment",
			pattern: "{fields.author.name}",
			model:   model.Model{},
			wantErr: oerrors.ErrValueNotFound,
			wantKey: "author.name",
		},
		{
			name:    "index out of range",
			pattern: "{fields.tags[1]}",
			model:   model.Model{"tags": []any{"go"}},
			wantErr: oerrors.ErrValueNotFound,
			wantKey: "tags[1]",
		},
		{
			name:    "first failure wins",
			pattern: "{title}-{missing}",
			model:   model.Model{},
			wantErr: oerrors.ErrValueNotFound,
			wantKey: "title",
		},
		{
			name:    "date names are not fields after expansion",
			pattern: "{{year}}",
			model:   model.Model{},
			wantErr: oerrors.ErrFieldNotFound,
			wantKey: "2024",
		},
	}

	g := New(WithClock(fixedClock()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.pattern, postEntry(), tt.model)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *PlaceholderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantKey, perr.Key)
		})
	}
}

func TestGenerate_Values(t *testing.T) {
	m := model.Model{
		"title":  "  Hello,   World!  ",
		"slug":   "already-a-slug",
		"draft":  false,
		"weight": 2.5,
		"author": model.Model{
			"name":  "Zoë Ångström",
			"links": []any{model.Model{"url": "https://a.example"}, model.Model{"url": "b_c"}},
		},
		"tags": []any{"Go", "CLI"},
	}

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "plain text", pattern: "{title}", want: "hello-world"},
		{name: "prefixed and bare agree", pattern: "{fields.title}|{title}", want: "hello-world|hello-world"},
		{name: "boolean", pattern: "{draft}", want: "false"},
		{name: "number", pattern: "{weight}", want: "25"},
		{name: "dotted field name reads nested value", pattern: "{fields.author.name}", want: "zoe-angstrom"},
		{name: "bracketed field name reads list item", pattern: "{fields.tags[1]}", want: "cli"},
		{name: "object value", pattern: "{author}", want: "object-object"},
		{name: "whole list", pattern: "{tags}", want: "gocli"},
		{name: "literal text kept", pattern: "posts/{slug}.en.md", want: "posts/already-a-slug.en.md"},
		{name: "empty braces kept", pattern: "{}{slug}", want: "{}already-a-slug"},
		{name: "unclosed brace kept", pattern: "{slug}-{oops", want: "already-a-slug-{oops"},
		{name: "no placeholders", pattern: "index.md", want: "index.md"},
	}

	g := New(WithClock(fixedClock()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Generate(tt.pattern, postEntry(), m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_FieldKeyIsWholeReference(t *testing.T) {
	nested := &schema.Entry{
		Name:   "posts",
		Fields: []schema.Field{schema.MustObject("author", schema.NewField("name", schema.TypeString))},
	}
	m := model.Model{"author": model.Model{"name": "Jane Doe"}}

	_, err := Generate("{fields.author.name}.md", nested, m)
	assert.ErrorIs(t, err, oerrors.ErrFieldNotFound)

	dotted := &schema.Entry{
		Name:   "posts",
		Fields: []schema.Field{schema.NewField("a.b", schema.TypeString)},
	}

	got, err := Generate("{fields.a.b}.md", dotted, model.Model{"a": model.Model{"b": "X Y"}})
	require.NoError(t, err)
	assert.Equal(t, "x-y.md", got)

	_, err = Generate("{a.b}.md", dotted, model.Model{"a": model.Model{"b": "X Y"}})
	assert.ErrorIs(t, err, oerrors.ErrValueNotFound)
}

func TestGenerate_NilEntry(t *testing.T) {
	_, err := Generate("{title}", nil, model.Model{"title": "x"})
	assert.ErrorIs(t, err, oerrors.ErrFieldNotFound)

	got, err := Generate("static.md", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "static.md", got)
}
