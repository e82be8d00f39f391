package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// EntryType distinguishes multi-file collections from single-file entries.
type EntryType string

const (
	EntryCollection EntryType = "collection"
	EntryFile       EntryType = "file"
)

// Entry is one schema of the content configuration. Content schemas carry a
// Path; reusable type schemas are addressed by Name only.
type Entry struct {
	Name     string    `json:"name"`
	Label    string    `json:"label,omitempty"`
	Type     EntryType `json:"type,omitempty"`
	Path     string    `json:"path,omitempty"`
	Filename string    `json:"filename,omitempty"`
	Format   string    `json:"format,omitempty"`
	Fields   []Field   `json:"fields,omitempty"`

	// HasPath marks a declared path. A declared empty path covers the whole
	// site root.
	HasPath bool `json:"-"`
}

// UnmarshalJSON decodes an entry, recording whether `path` was declared.
// `path: null` counts as undeclared.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var raw struct {
		plain
		Path *string `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry(raw.plain)
	if raw.Path != nil {
		e.Path = *raw.Path
		e.HasPath = true
	}
	return nil
}

func (e *Entry) matchesPaths() bool {
	return e.Path != "" || e.HasPath
}

// Field returns the top-level field with the given name.
func (e *Entry) Field(name string) (*Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// Config is the content configuration: an ordered list of schema entries.
type Config struct {
	Content []Entry `json:"content"`
}

// Validate checks the entries for problems decoding cannot see on its own:
// duplicate entry names and duplicate top-level field names.
func (c *Config) Validate() error {
	names := make(map[string]int, len(c.Content))
	for i, entry := range c.Content {
		if entry.Name == "" {
			return &FieldError{Field: fmt.Sprintf("content[%d]", i), Message: "entry name is required"}
		}
		if prev, dup := names[entry.Name]; dup {
			return &FieldError{
				Field:   fmt.Sprintf("content[%d]", i),
				Message: fmt.Sprintf("entry name %q already used by content[%d]", entry.Name, prev),
			}
		}
		names[entry.Name] = i

		seen := make(map[string]struct{}, len(entry.Fields))
		for _, f := range entry.Fields {
			if _, dup := seen[f.Name]; dup {
				return &FieldError{Field: entry.Name + "." + f.Name, Message: "duplicate field name"}
			}
			seen[f.Name] = struct{}{}
		}
	}
	return nil
}

// ByName returns the first entry whose name equals name.
func (c *Config) ByName(name string) (*Entry, bool) {
	for i := range c.Content {
		if c.Content[i].Name == name {
			return &c.Content[i], true
		}
	}
	return nil, false
}

// ByPath returns the entry whose path is the deepest prefix of path. Both
// sides are compared in normalized form (see NormalizePath), so the match is
// bounded by separators and insensitive to repeated slashes. Among equally
// deep matches the first in configuration order wins. Entries without a path
// never match; a declared empty path normalizes to "/" and matches anything
// no deeper entry claims.
func (c *Config) ByPath(path string) (*Entry, bool) {
	query := NormalizePath(path)

	best := -1
	bestLen := 0
	for i := range c.Content {
		if !c.Content[i].matchesPaths() {
			continue
		}
		prefix := NormalizePath(c.Content[i].Path)
		if !strings.HasPrefix(query, prefix) {
			continue
		}
		if best == -1 || len(prefix) > bestLen {
			best, bestLen = i, len(prefix)
		}
	}
	if best == -1 {
		return nil, false
	}
	return &c.Content[best], true
}

var repeatedSlashes = regexp.MustCompile(`//+`)

// NormalizePath wraps p in separators and collapses repeated separators, so
// "a//b" and "/a/b/" both become "/a/b/".
func NormalizePath(p string) string {
	return repeatedSlashes.ReplaceAllString("/"+p+"/", "/")
}
