package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testPages = `
content:
  - name: posts
    label: Posts
    type: collection
    path: content/posts
    filename: "{year}-{month}-{day}-{fields.title}.md"
    fields:
      - name: title
      - name: date
        type: date
      - name: draft
        type: boolean
      - name: tags
        list: true
      - name: author
        type: object
        fields:
          - name: name
          - name: email
  - name: about
    type: file
    path: content/about.md
    fields:
      - name: title
`

// newSite writes a site root with a .pages.yml and returns its path.
func newSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSiteFile(t, root, ".pages.yml", testPages)
	return root
}

// writeSiteFile writes a file under root and returns its absolute path.
func writeSiteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command in an isolated environment.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"PCMS_CONFIG", "PCMS_ROOT", "PCMS_PAGES", "PCMS_OUTPUT"} {
		t.Setenv(key, "")
	}

	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
