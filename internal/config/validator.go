package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var pagesSchemaCUE []byte

// cueDecoder evaluates .pages.cue files against the embedded #Pages schema.
type cueDecoder struct {
	ctx    *cue.Context
	schema cue.Value
}

func newCUEDecoder() (*cueDecoder, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(pagesSchemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#Pages"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Pages: %w", schema.Err())
	}

	return &cueDecoder{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// decode compiles data, unifies it with the schema and returns the concrete
// result as JSON.
func (d *cueDecoder) decode(filename string, data []byte) ([]byte, error) {
	value := d.ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, value.Err())
	}

	unified := d.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", filename, err)
	}

	out, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", filename, err)
	}
	return out, nil
}
