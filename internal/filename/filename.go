// Package filename renders content file names from patterns such as
// "{year}-{month}-{day}-{fields.title}.md".
//
// Rendering happens in two passes. The date placeholders {year}, {month},
// {day}, {hour}, {minute} and {second} are replaced first. Every remaining
// {ref} is then a field reference: "fields.a.b[2]" reads a dotted path from
// the model, a bare "a" reads model["a"] directly. Either way the key must be
// declared as a top-level field of the schema. Field values are
// transliterated to ASCII and slugified.
package filename

import (
	"fmt"
	"strings"
	"time"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/schema"
)

const fieldsPrefix = "fields."

// PlaceholderError reports a field placeholder that could not be resolved.
// It wraps oerrors.ErrFieldNotFound or oerrors.ErrValueNotFound.
type PlaceholderError struct {
	// Placeholder is the reference between the braces.
	Placeholder string
	// Key is the field key after the "fields." prefix was removed.
	Key string
	Err error
}

// Error implements the error interface.
func (e *PlaceholderError) Error() string {
	switch e.Err {
	case oerrors.ErrFieldNotFound:
		return fmt.Sprintf("field '%s' not found in schema", e.Key)
	case oerrors.ErrValueNotFound:
		return fmt.Sprintf("field '%s' not found in model", e.Key)
	}
	return fmt.Sprintf("placeholder {%s}: %v", e.Placeholder, e.Err)
}

// Unwrap returns the sentinel.
func (e *PlaceholderError) Unwrap() error {
	return e.Err
}

// Generator renders file names. Use New.
type Generator struct {
	now model.Clock
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock used for date placeholders.
func WithClock(c model.Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.now = c
		}
	}
}

// New returns a Generator reading local wall-clock time unless a clock is
// supplied.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders pattern with the system clock. See Generator.Generate.
func Generate(pattern string, entry *schema.Entry, m model.Model) (string, error) {
	return New().Generate(pattern, entry, m)
}

// Generate renders pattern against entry and m.
//
// The key of a field reference, with any "fields." prefix removed, must
// name a top-level field of entry as a whole: "fields.a.b" needs a field
// called "a.b", whose value is then read from m["a"]["b"]. A reference to an
// unknown field fails with ErrFieldNotFound, a reference whose value is
// absent from m fails with ErrValueNotFound. Placeholders are matched left to
// right without nesting; "{}" and an unclosed "{" are kept literally.
func (g *Generator) Generate(pattern string, entry *schema.Entry, m model.Model) (string, error) {
	return expandFields(expandDates(pattern, g.now()), entry, m)
}

func expandDates(pattern string, t time.Time) string {
	return strings.NewReplacer(
		"{year}", t.Format("2006"),
		"{month}", t.Format("01"),
		"{day}", t.Format("02"),
		"{hour}", t.Format("15"),
		"{minute}", t.Format("04"),
		"{second}", t.Format("05"),
	).Replace(pattern)
}

func expandFields(pattern string, entry *schema.Entry, m model.Model) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	i := 0
	for i < len(pattern) {
		open := strings.IndexByte(pattern[i:], '{')
		if open < 0 {
			b.WriteString(pattern[i:])
			break
		}
		open += i
		b.WriteString(pattern[i:open])

		end := strings.IndexByte(pattern[open+1:], '}')
		if end < 0 {
			b.WriteString(pattern[open:])
			break
		}
		end += open + 1

		if end == open+1 {
			// "{}" is not a placeholder; rescan from the brace that follows.
			b.WriteByte('{')
			i = open + 1
			continue
		}

		value, err := resolve(pattern[open+1:end], entry, m)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i = end + 1
	}

	return b.String(), nil
}

func resolve(ref string, entry *schema.Entry, m model.Model) (string, error) {
	key, dotted := strings.CutPrefix(ref, fieldsPrefix)
	if !hasField(entry, key) {
		return "", &PlaceholderError{Placeholder: ref, Key: key, Err: oerrors.ErrFieldNotFound}
	}

	var (
		value any
		found bool
	)
	if dotted {
		value, found = lookupPath(m, key)
	} else {
		value, found = m[key]
	}
	if !found {
		return "", &PlaceholderError{Placeholder: ref, Key: key, Err: oerrors.ErrValueNotFound}
	}
	return Slugify(Stringify(value)), nil
}

func hasField(entry *schema.Entry, name string) bool {
	if entry == nil {
		return false
	}
	_, ok := entry.Field(name)
	return ok
}
