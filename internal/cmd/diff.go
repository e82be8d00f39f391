package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <name> <content-file>",
		Short: "Compare a content file with its normalized model",
		Long: `Show what building the model would change in a content file.

The left side is the structured part of the file as stored. The right side is
the model built from it: undeclared keys removed, missing fields filled with
defaults.

Examples:
  pcms diff posts content/posts/2024-03-09-hello.md`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	entry, err := s.entry(args[0])
	if err != nil {
		return err
	}

	doc, err := readContent(args[1])
	if err != nil {
		return err
	}

	raw := doc.Data
	if raw == nil {
		raw = map[string]any{}
	}
	m := newBuilder().CreateModel(entry.Fields, raw)

	w := cmd.OutOrStdout()
	result, err := output.DiffValues(args[1], raw, "model", m, output.UseColor(w))
	if err != nil {
		return err
	}

	output.EntryLogger(entry.Name).Debug("diff computed", "path", args[1], "changes", result.Changes)

	if result.Changes > 0 {
		fmt.Fprintln(w, result.Report)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, output.StyleSummary.Render(output.DiffSummary(result.Changes)))
	return nil
}
