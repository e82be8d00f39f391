package cmd

import (
	"github.com/spf13/cobra"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/output"
	"github.com/pagescms/cli/internal/schema"
)

var (
	modelPathFlag     string
	modelSanitizeFlag bool
)

// NewModelCmd creates the model command.
func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model [name] [content-file]",
		Short: "Build a content model from a schema entry",
		Long: `Build the content model for a schema entry.

Every field declared by the entry is present in the result. Values come from
the content file when given, defaults otherwise. Keys in the content file that
the schema does not declare are dropped.

Examples:
  # Empty model for the "posts" entry
  pcms model posts

  # Normalize an existing post
  pcms model posts content/posts/2024-03-09-hello.md

  # Resolve the entry from the content path instead of its name
  pcms model --path content/posts/2024-03-09-hello.md content/posts/2024-03-09-hello.md

  # Drop empty values and print JSON
  pcms model posts content/posts/hello.md --sanitize -o json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runModel,
	}

	cmd.Flags().StringVar(&modelPathFlag, "path", "", "Resolve the schema entry from a content path")
	cmd.Flags().BoolVar(&modelSanitizeFlag, "sanitize", false, "Remove empty values from the model")

	return cmd
}

func runModel(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	var (
		entry       *schema.Entry
		contentFile string
	)
	switch {
	case modelPathFlag != "":
		if len(args) > 1 {
			return oerrors.NewValidationError("--path replaces the entry name argument", "", "path", "pass at most the content file")
		}
		entry, err = s.entryForPath(modelPathFlag)
		if len(args) == 1 {
			contentFile = args[0]
		}
	case len(args) == 0:
		return oerrors.NewValidationError("an entry name or --path is required", "", "name", "run 'pcms config list' to see the configured entries")
	default:
		entry, err = s.entry(args[0])
		if len(args) == 2 {
			contentFile = args[1]
		}
	}
	if err != nil {
		return err
	}

	log := output.EntryLogger(entry.Name)
	log.Debug("schema resolved", "fields", len(entry.Fields))

	var raw map[string]any
	if contentFile != "" {
		doc, err := readContent(contentFile)
		if err != nil {
			return err
		}
		raw = doc.Data
		log.Debug("content loaded", "path", contentFile, "keys", len(raw))
	}

	m := newBuilder().CreateModel(entry.Fields, raw)
	if modelSanitizeFlag {
		sanitized, nonEmpty := model.Sanitize(m)
		if !nonEmpty {
			log.Warn("model is empty after sanitizing")
		}
		m = sanitized
	}

	return printModel(cmd.OutOrStdout(), entry.Fields, m)
}
