package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment
// variables first.
// Environment variables:
//   - COLLAB_CONFIG_PATH: config file location (default: ~/.config/collab.toml)
//   - COLLAB_HOME: base directory for collab data (default: ~/.local/share/collab)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking COLLAB_CONFIG_PATH
// first, then falling back to ~/.config/collab.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("COLLAB_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "collab.toml"), nil
}

// getBaseDir returns the data base directory, checking COLLAB_HOME first,
// then falling back to the XDG default ~/.local/share/collab.
func getBaseDir() (string, error) {
	if path := os.Getenv("COLLAB_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "collab"), nil
}
