package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/output"
	"github.com/pagescms/cli/internal/schema"
)

// PagesFileNames are the content configuration files looked up in a site
// root, in order.
var PagesFileNames = []string{".pages.yml", ".pages.yaml", ".pages.cue"}

// FindPagesFile returns the first content configuration file present in root.
func FindPagesFile(root string) (string, error) {
	for _, name := range PagesFileNames {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", oerrors.NewNotFoundError(
		"no content configuration found",
		root,
		"create a .pages.yml in the site root or pass --pages",
	)
}

// ResolvePagesPath returns the content configuration path for a site root.
// An explicit path is used as given, relative paths resolved against root.
func ResolvePagesPath(root, explicit string) (string, error) {
	if explicit == "" {
		return FindPagesFile(root)
	}
	expanded, err := ExpandPath(explicit)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}
	return expanded, nil
}

// LoadPages reads and validates a content configuration file. Files ending
// in .cue are evaluated with CUE; everything else is decoded as YAML.
func LoadPages(path string) (*schema.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("content configuration does not exist", path, "")
		}
		return nil, err
	}

	cfg, err := ParsePages(path, data)
	if err != nil {
		return nil, err
	}

	output.Debug("loaded content configuration", "path", path, "entries", len(cfg.Content))
	return cfg, nil
}

// ParsePages decodes content configuration bytes. The filename selects the
// decoder and appears in error details.
func ParsePages(filename string, data []byte) (*schema.Config, error) {
	jsonData, err := pagesJSON(filename, data)
	if err != nil {
		return nil, invalidPages(filename, err)
	}

	var cfg schema.Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, invalidPages(filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, invalidPages(filename, err)
	}
	return &cfg, nil
}

func pagesJSON(filename string, data []byte) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(filename), ".cue") {
		dec, err := newCUEDecoder()
		if err != nil {
			return nil, err
		}
		return dec.decode(filename, data)
	}
	return yaml.YAMLToJSON(data)
}

func invalidPages(filename string, err error) error {
	detail := &oerrors.DetailError{
		Type:     "validation failed",
		Message:  err.Error(),
		Location: filename,
		Hint:     "check the content configuration against the documented entry and field shape",
		Cause:    err,
	}
	var fieldErr *schema.FieldError
	if errors.As(err, &fieldErr) {
		detail.Field = fieldErr.Field
		detail.Message = fieldErr.Message
	} else {
		detail.Cause = fmt.Errorf("%w: %w", oerrors.ErrValidation, err)
	}
	return detail
}
