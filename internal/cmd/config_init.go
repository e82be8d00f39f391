package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pagescms/cli/internal/config"
	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/output"
)

var configInitForce bool

const configHeader = `# pcms CLI settings.
# Every key can be overridden with a PCMS_* environment variable or a flag.
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the pcms CLI configuration.

Writes ~/.pcms/config.yaml (or the --config / PCMS_CONFIG path) with the
default settings:
  root             Site root directory
  output           Default print format (yaml or json)
  log.timestamps   Timestamps in log output

Examples:
  # Initialize configuration
  pcms config init

  # Overwrite existing configuration
  pcms config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	resolved, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	configFile, err := config.ExpandPath(resolved.Value)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configFile); err == nil && !configInitForce {
		return oerrors.NewExistsError(
			"configuration already exists",
			configFile,
			"Use --force to overwrite existing configuration.",
		)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return oerrors.NewPermissionError("could not create config directory",
			map[string]string{"path": filepath.Dir(configFile)}, "")
	}

	cfg := config.DefaultConfig()
	cfg.Log.Timestamps = output.BoolPtr(true)

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configFile, buf.Bytes(), 0o600); err != nil {
		return oerrors.NewPermissionError("could not write config file",
			map[string]string{"path": configFile}, "")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark("Configuration initialized at "+configFile))
	fmt.Fprintln(w, "Review settings with: pcms config list")

	return nil
}
