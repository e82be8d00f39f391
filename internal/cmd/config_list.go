package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/output"
)

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show resolved settings and content entries",
		Long: `Show every resolved CLI setting with the source it came from, followed by
the entries of the site's content configuration.

Examples:
  pcms config list
  pcms config list --root ~/sites/blog`,
		Args: cobra.NoArgs,
		RunE: runConfigList,
	}
}

func runConfigList(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	if resolvedConfig != nil {
		t := output.NewTable("KEY", "VALUE", "SOURCE")
		for _, v := range resolvedConfig.Values() {
			t.Row(v.Key, v.Value, string(v.Source))
		}
		fmt.Fprintln(w, t.String())
	}

	s, err := loadSite()
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) {
			output.Warn("no content configuration", "root", siteRoot())
			return nil
		}
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleDim.Render("content: ")+output.StyleNoun.Render(s.PagesPath))
	writeEntryTable(w, s.Config.Content)
	return nil
}
