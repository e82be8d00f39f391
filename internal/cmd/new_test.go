package cmd

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/output"
)

func TestNewCmd_WritesFile(t *testing.T) {
	root := newSite(t)

	out, err := runCLI(t, "--root", root, "new", "posts",
		"--set", "title=Hello World",
		"--set", "author.name=Jane",
		"--set", "tags=[go, cms]",
	)
	require.NoError(t, err)

	target := filepath.Join(root, "content", "posts", "2024-03-09-hello-world.md")
	assert.Contains(t, out, target)
	assert.Contains(t, out, output.StatusCreated)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	written := string(data)

	assert.Contains(t, written, "---\ntitle: Hello World\n")
	assert.Contains(t, written, `date: "2024-03-09"`)
	assert.Contains(t, written, "draft: false")
	assert.Contains(t, written, "tags:\n  - go\n  - cms\n")
	assert.Contains(t, written, "author:\n  name: Jane\n")
	assert.NotContains(t, written, "email")
}

func TestNewCmd_RefusesOverwrite(t *testing.T) {
	root := newSite(t)
	existing := writeSiteFile(t, root, "content/posts/2024-03-09-hello.md", "---\ntitle: keep me\n---\n")

	_, err := runCLI(t, "--root", root, "new", "posts", "--set", "title=Hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrExists)
	assert.Equal(t, ExitConflict, ExitCodeFromError(err))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep me")
}

func TestNewCmd_DryRun(t *testing.T) {
	root := newSite(t)

	out, err := runCLI(t, "--root", root, "new", "posts", "--set", "title=Draft", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, output.StatusWouldWrite)
	assert.Contains(t, out, "title: Draft")
	assert.NoFileExists(t, filepath.Join(root, "content", "posts", "2024-03-09-draft.md"))
}

func TestNewCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "file entry",
			args:    []string{"new", "about"},
			wantErr: oerrors.ErrValidation,
		},
		{
			name:    "malformed set",
			args:    []string{"new", "posts", "--set", "title"},
			wantErr: oerrors.ErrValidation,
		},
		{
			name:    "set through a scalar",
			args:    []string{"new", "posts", "--set", "author=Jane", "--set", "author.name=Jane"},
			wantErr: oerrors.ErrValidation,
		},
		{
			name:    "pattern names unknown field",
			args:    []string{"new", "posts", "--set", "title=x", "--pattern", "{fields.slug}.md"},
			wantErr: oerrors.ErrFieldNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newSite(t)

			_, err := runCLI(t, append([]string{"--root", root}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteNewFile_DirectoryErrors(t *testing.T) {
	t.Run("parent is a file", func(t *testing.T) {
		root := t.TempDir()
		blocker := writeSiteFile(t, root, "content", "not a directory")

		err := writeNewFile(filepath.Join(blocker, "posts", "a.md"), []byte("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, syscall.ENOTDIR)
		assert.NotErrorIs(t, err, oerrors.ErrPermission)
		assert.Equal(t, ExitGeneralError, ExitCodeFromError(err))
	})

	t.Run("read-only parent", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}
		root := t.TempDir()
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.Mkdir(locked, 0o555))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		err := writeNewFile(filepath.Join(locked, "posts", "a.md"), []byte("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrPermission)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Equal(t, ExitPermissionDenied, ExitCodeFromError(err))
	})
}

func TestParseSetFlags(t *testing.T) {
	got, err := parseSetFlags([]string{
		"title=Hello: World",
		"draft=true",
		"count=3",
		"author.name=Jane",
		"author.email=jane@example.com",
		"empty=",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title": "Hello: World",
		"draft": true,
		"count": 3,
		"author": map[string]any{
			"name":  "Jane",
			"email": "jane@example.com",
		},
		"empty": nil,
	}, got)
}
