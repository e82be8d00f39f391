package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for pcms.
type Paths struct {
	// ConfigFile is the path to the config file (~/.pcms/config.yaml).
	ConfigFile string

	// HomeDir is the pcms home directory (~/.pcms).
	HomeDir string
}

// DefaultPaths returns the default paths for pcms.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	pcmsHome := filepath.Join(homeDir, ".pcms")

	return &Paths{
		ConfigFile: filepath.Join(pcmsHome, "config.yaml"),
		HomeDir:    pcmsHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If PCMS_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("PCMS_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
