// Package config provides configuration loading and management: CLI settings
// from ~/.pcms/config.yaml and the site's content configuration (.pages.yml).
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the pcms CLI settings.
// Loaded from ~/.pcms/config.yaml, overridden by PCMS_* environment variables.
type Config struct {
	// Root is the site directory holding the content configuration and content.
	// Env: PCMS_ROOT, Default: "."
	Root string `mapstructure:"root" yaml:"root,omitempty"`

	// Pages is the content configuration file. Relative paths are resolved
	// against Root.
	// Env: PCMS_PAGES, Default: first of .pages.yml, .pages.yaml, .pages.cue in Root
	Pages string `mapstructure:"pages" yaml:"pages,omitempty"`

	// Output is the default output format for printed models.
	// Env: PCMS_OUTPUT, Default: "yaml"
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `pcms config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Root:   ".",
		Output: "yaml",
	}
}

// WithDefaults returns a copy of c with empty values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Root == "" {
		out.Root = def.Root
	}
	if out.Output == "" {
		out.Output = def.Output
	}
	return &out
}
