package config

import (
	"os"
	"sort"

	"github.com/pagescms/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions lists the candidates for one configuration value.
type ResolveOptions struct {
	Key         string
	FlagValue   string
	EnvVar      string
	ConfigValue string
	Default     string
}

// Resolve picks a value using precedence: flag > env > config > default.
// Empty candidates are skipped. Every non-empty candidate below the winner is
// recorded as shadowed.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.Default},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PCMS_CONFIG env, (3) ~/.pcms/config.yaml default.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:       "config",
		FlagValue: flagValue,
		EnvVar:    "PCMS_CONFIG",
		Default:   paths.ConfigFile,
	}), nil
}

// ResolvedConfig holds every resolved CLI setting.
type ResolvedConfig struct {
	ConfigPath ResolvedValue
	Root       ResolvedValue
	Pages      ResolvedValue
	Output     ResolvedValue
	Timestamps bool
}

// ResolveAllOptions carries the raw flag values and the loaded config file.
type ResolveAllOptions struct {
	ConfigFlag string
	RootFlag   string
	PagesFlag  string
	OutputFlag string
	// Config is the loaded config file; nil when none could be loaded.
	Config *Config
}

// ResolveAll resolves every CLI setting.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	def := DefaultConfig()

	configPath, err := ResolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		ConfigPath: configPath,
		Root: Resolve(ResolveOptions{
			Key: "root", FlagValue: opts.RootFlag, EnvVar: "PCMS_ROOT",
			ConfigValue: cfg.Root, Default: def.Root,
		}),
		Pages: Resolve(ResolveOptions{
			Key: "pages", FlagValue: opts.PagesFlag, EnvVar: "PCMS_PAGES",
			ConfigValue: cfg.Pages,
		}),
		Output: Resolve(ResolveOptions{
			Key: "output", FlagValue: opts.OutputFlag, EnvVar: "PCMS_OUTPUT",
			ConfigValue: cfg.Output, Default: def.Output,
		}),
		Timestamps: true,
	}
	if cfg.Log.Timestamps != nil {
		resolved.Timestamps = *cfg.Log.Timestamps
	}

	return resolved, nil
}

// Values returns the resolved string settings in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.Root, r.Pages, r.Output}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)

		sources := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		for _, source := range sources {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", v.Shadowed[ConfigSource(source)],
			)
		}
	}
}
