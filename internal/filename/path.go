package filename

import (
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// lookupPath reads a dotted path with optional bracket indices, for example
// "author.links[1].url", from m. Any missing segment, a malformed or negative
// index, or an index on a non-sequence reports not found.
func lookupPath(m map[string]any, key string) (any, bool) {
	x, ok := pathExpr(key)
	if !ok {
		return nil, false
	}
	results := x.Get(m)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// pathExpr compiles key into a jp expression. Keys are split by hand rather
// than parsed as JSONPath so that names containing JSONPath syntax are taken
// literally.
func pathExpr(key string) (jp.Expr, bool) {
	x := jp.R()
	for _, part := range strings.Split(key, ".") {
		if !strings.HasSuffix(part, "]") {
			x = x.C(part)
			continue
		}

		open := strings.IndexByte(part, '[')
		if open < 0 {
			x = x.C(part)
			continue
		}
		rest := part[open+1:]
		end := strings.IndexByte(rest, ']')
		idx, err := strconv.Atoi(rest[:end])
		if err != nil || idx < 0 {
			return nil, false
		}
		x = x.C(part[:open]).N(idx)
	}
	return x, true
}
