package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for collab.
//
// BaseURL selects the persistence mode once for the whole process: when it
// is set the data layer talks to the remote CollabCloud backend; when it is
// empty everything is persisted in the local fallback store under BaseDir.
type Config struct {
	ClientID string       `toml:"client_id"`
	BaseDir  string       `toml:"base_dir"`
	LogDir   string       `toml:"log_dir"`
	BaseURL  string       `toml:"base_url,omitempty"`
	Remote   RemoteConfig `toml:"remote"`
	Local    LocalConfig  `toml:"local"`
}

// RemoteConfig holds settings for the remote backend client.
type RemoteConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"` // per-request timeout; defaults to 30
}

// LocalConfig holds settings for the local fallback store.
type LocalConfig struct {
	DataDir string `toml:"data_dir,omitempty"` // defaults to {base_dir}/data
}

// NewConfig creates a new Config with the provided values and default
// directory layout.
func NewConfig(clientID, baseDir string) *Config {
	return &Config{
		ClientID: clientID,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Remote: RemoteConfig{
			TimeoutSeconds: 30,
		},
		Local: LocalConfig{
			DataDir: filepath.Join(baseDir, "data"),
		},
	}
}

// RemoteMode reports whether a remote backend is configured.
func (c *Config) RemoteMode() bool {
	return c.BaseURL != ""
}

// SessionPath returns the location of the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.BaseDir, "session.json")
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Remote.TimeoutSeconds <= 0 {
		cfg.Remote.TimeoutSeconds = 30
	}
	if cfg.Local.DataDir == "" && cfg.BaseDir != "" {
		cfg.Local.DataDir = filepath.Join(cfg.BaseDir, "data")
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. Fails if a config file already exists.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
