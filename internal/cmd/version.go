package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show pcms CLI version information.

Displays:
  - pcms version, commit, and build date
  - Go and CUE SDK versions`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	return nil
}
