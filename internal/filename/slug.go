package filename

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
)

// symbols are spelled out before stripping, so "Q&A" becomes "qanda".
var symbols = map[rune]string{
	'&': "and",
	'$': "dollar",
	'%': "percent",
	'<': "less",
	'>': "greater",
	'|': "or",
}

// Slugify transliterates s to ASCII and returns a strict lowercase slug:
// only [a-z0-9] runs joined by single hyphens, with no leading or trailing
// hyphen. Hyphens and whitespace separate words; all other punctuation,
// underscores included, is removed.
func Slugify(s string) string {
	ascii := slug.SubstituteRune(unidecode.Unidecode(s), symbols)
	return slug.Make(strict(ascii))
}

func strict(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return ' '
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)):
			return r
		default:
			return -1
		}
	}, s)
}

// Stringify renders a model value as text for use in a file name. Sequences
// are joined with commas and mappings render as "[object Object]".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339)
	case map[string]any, map[any]any:
		return "[object Object]"
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			if item == nil {
				continue
			}
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
