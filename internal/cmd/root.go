// Package cmd provides CLI command implementations.
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/config"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/output"
)

var (
	// Global flags
	configFlag       string
	rootFlag         string
	pagesFlag        string
	outputFormatFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Resolved configuration (loaded during PersistentPreRunE)
	fileConfig     *config.Config
	resolvedConfig *config.ResolvedConfig

	// now is the clock for default dates and filename placeholders.
	now model.Clock = time.Now
)

// NewRootCmd creates the root command for the pcms CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pcms",
		Short: "Content model tooling for Pages CMS sites",
		Long: `pcms builds, normalizes and names content entries described by a site's
.pages.yml content configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: PCMS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Site root directory (env: PCMS_ROOT)")
	rootCmd.PersistentFlags().StringVar(&pagesFlag, "pages", "", "Content configuration file, relative to root (env: PCMS_PAGES)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "", "Output format: yaml, json (env: PCMS_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewModelCmd())
	rootCmd.AddCommand(NewSanitizeCmd())
	rootCmd.AddCommand(NewResolveCmd())
	rootCmd.AddCommand(NewFilenameCmd())
	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	configPath, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}

	loaded, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		// Commands that don't need settings still work.
		output.Debug("config load error", "error", err)
	}
	fileConfig = loaded

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		ConfigFlag: configFlag,
		RootFlag:   rootFlag,
		PagesFlag:  pagesFlag,
		OutputFlag: outputFormatFlag,
		Config:     loaded,
	})
	if err != nil {
		return err
	}
	resolvedConfig = resolved

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if verboseFlag {
		config.LogResolvedValues(resolvedConfig.Values())
	}

	return nil
}

// GetResolvedConfig returns the resolved configuration.
func GetResolvedConfig() *config.ResolvedConfig {
	return resolvedConfig
}

// siteRoot returns the resolved site root.
func siteRoot() string {
	if resolvedConfig != nil {
		return resolvedConfig.Root.Value
	}
	if rootFlag != "" {
		return rootFlag
	}
	return "."
}

// outputFormat returns the resolved print format.
func outputFormat() (output.Format, error) {
	raw := outputFormatFlag
	if resolvedConfig != nil {
		raw = resolvedConfig.Output.Value
	}
	if raw == "" {
		return output.FormatYAML, nil
	}
	format, ok := output.ParseFormat(raw)
	if !ok {
		return "", &ExitError{
			Err:  invalidFlag("output", raw, "use one of: yaml, json"),
			Code: ExitValidationError,
		}
	}
	return format, nil
}
