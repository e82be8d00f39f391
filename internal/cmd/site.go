package cmd

import (
	"fmt"
	"io"

	"github.com/pagescms/cli/internal/config"
	"github.com/pagescms/cli/internal/content"
	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/output"
	"github.com/pagescms/cli/internal/schema"
)

// site is a loaded site root with its content configuration.
type site struct {
	Root      string
	PagesPath string
	Config    *schema.Config
}

// loadSite loads the content configuration under the resolved root.
func loadSite() (*site, error) {
	root := siteRoot()

	explicit := ""
	if resolvedConfig != nil {
		explicit = resolvedConfig.Pages.Value
	}

	pagesPath, err := config.ResolvePagesPath(root, explicit)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadPages(pagesPath)
	if err != nil {
		return nil, err
	}

	return &site{Root: root, PagesPath: pagesPath, Config: cfg}, nil
}

// entry returns the named schema entry.
func (s *site) entry(name string) (*schema.Entry, error) {
	e, ok := s.Config.ByName(name)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no content entry named %q", name),
			s.PagesPath,
			"run 'pcms config list' to see the configured entries",
		)
	}
	return e, nil
}

// entryForPath resolves the schema entry owning a content path.
func (s *site) entryForPath(path string) (*schema.Entry, error) {
	e, ok := s.Config.ByPath(path)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no content entry matches path %q", path),
			s.PagesPath,
			"",
		)
	}
	return e, nil
}

// readContent reads a content file, detecting its format from the extension.
func readContent(path string) (*content.Document, error) {
	return content.ReadFile(path, content.DetectFormat(path))
}

// newBuilder returns a model builder on the command clock.
func newBuilder() *model.Builder {
	return model.NewBuilder(model.WithClock(now))
}

// printModel writes m in the resolved output format, keys in schema order.
func printModel(w io.Writer, fields []schema.Field, m model.Model) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	codec := content.FormatYAML
	if format == output.FormatJSON {
		codec = content.FormatJSON
	}
	return content.Encode(w, codec, fields, m, nil)
}
