// Package content reads content files into raw content mappings and writes
// models back in the same format.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	oerrors "github.com/pagescms/cli/internal/errors"
)

// Format identifies how a content file is serialized.
type Format string

const (
	// FormatFrontMatter is a text document with a YAML front matter block.
	FormatFrontMatter Format = "yaml-frontmatter"
	// FormatYAML is a plain YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON is a plain JSON document.
	FormatJSON Format = "json"
)

// Document is a parsed content file.
type Document struct {
	Path   string
	Format Format
	// Data holds the structured part: the front matter or the whole document.
	Data map[string]any
	// Body is the text after the front matter. Empty for YAML and JSON.
	Body []byte
}

// ParseFormat maps a configured format name to a Format. Unknown names
// return false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml-frontmatter", "frontmatter", "markdown", "md":
		return FormatFrontMatter, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	}
	return "", false
}

// DetectFormat picks a format from the file extension. Anything that is not
// YAML or JSON is treated as a front matter document.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatFrontMatter
}

// ReadFile reads and parses the content file at path. When format is empty
// it is detected from the extension.
func ReadFile(path string, format Format) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("content file does not exist", path, "")
		}
		return nil, fmt.Errorf("opening content file: %w", err)
	}
	defer f.Close()

	if format == "" {
		format = DetectFormat(path)
	}
	doc, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse reads a content document in the given format. A front matter
// document without a front matter block yields empty data and the whole
// input as body.
func Parse(r io.Reader, format Format) (*Document, error) {
	doc := &Document{Format: format}

	switch format {
	case FormatFrontMatter:
		var matter map[string]any
		body, err := frontmatter.Parse(r, &matter)
		if err != nil {
			return nil, fmt.Errorf("reading front matter: %w", err)
		}
		doc.Data = normalizeMap(matter)
		doc.Body = body
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		doc.Data = normalizeMap(m)
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, fmt.Errorf("decoding json: %w", err)
			}
		}
		doc.Data = normalizeMap(m)
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}

	return doc, nil
}

// normalizeMap returns m with every nested mapping keyed by string. Front
// matter decoders produce map[interface{}]interface{} for nested mappings.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalizeMap(x)
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	}
	return v
}
