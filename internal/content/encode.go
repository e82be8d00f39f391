package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/schema"
)

// Encode writes m in the given format. Keys follow the order of fields,
// recursively for object fields; keys the schema does not know follow in
// sorted order. body is appended after the front matter block and ignored
// for the other formats.
func Encode(w io.Writer, format Format, fields []schema.Field, m model.Model, body []byte) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		return writeYAML(w, fields, m)
	case FormatFrontMatter:
		var buf bytes.Buffer
		buf.WriteString("---\n")
		if len(m) > 0 {
			if err := writeYAML(&buf, fields, m); err != nil {
				return err
			}
		}
		buf.WriteString("---\n")
		buf.Write(body)
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unsupported content format %q", format)
}

// Marshal is Encode into a byte slice.
func Marshal(format Format, fields []schema.Field, m model.Model, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, format, fields, m, body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAML(w io.Writer, fields []schema.Field, m model.Model) error {
	node, err := OrderedNode(fields, m)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// OrderedNode builds a YAML mapping node for m with keys in schema order.
func OrderedNode(fields []schema.Field, m map[string]any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		v, ok := m[f.Name]
		if !ok {
			continue
		}
		seen[f.Name] = struct{}{}
		vn, err := fieldNode(f, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		node.Content = append(node.Content, keyNode(f.Name), vn)
	}

	extra := make([]string, 0, len(m)-len(seen))
	for k := range m {
		if _, ok := seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		vn, err := valueNode(m[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode(k), vn)
	}

	return node, nil
}

func fieldNode(f schema.Field, v any) (*yaml.Node, error) {
	if !f.IsObject() {
		return valueNode(v)
	}
	if nested, ok := v.(map[string]any); ok && !f.List {
		return OrderedNode(f.Fields, nested)
	}
	items, ok := v.([]any)
	if !ok || !f.List {
		return valueNode(v)
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		var (
			n   *yaml.Node
			err error
		)
		if nested, ok := item.(map[string]any); ok {
			n, err = OrderedNode(f.Fields, nested)
		} else {
			n, err = valueNode(item)
		}
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, n)
	}
	return seq, nil
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

func valueNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}
