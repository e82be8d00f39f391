package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/output"
)

// NewSanitizeCmd creates the sanitize command.
func NewSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <content-file>",
		Short: "Remove empty values from a content file",
		Long: `Print the structured part of a content file with empty values removed.

Empty strings, zero numbers, nulls and empty collections are dropped. false is
kept. Mappings and lists are dropped when nothing meaningful remains in them.
The file itself is not modified.

Examples:
  pcms sanitize content/posts/2024-03-09-hello.md
  pcms sanitize data/site.json -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runSanitize,
	}
}

func runSanitize(cmd *cobra.Command, args []string) error {
	doc, err := readContent(args[0])
	if err != nil {
		return err
	}

	sanitized, nonEmpty := model.Sanitize(doc.Data)
	output.Debug("content sanitized", "path", doc.Path, "empty", !nonEmpty)

	return printModel(cmd.OutOrStdout(), nil, sanitized)
}
