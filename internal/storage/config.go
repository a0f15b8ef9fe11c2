package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// AssistConfig configures the AI assistant. Environment variables override
// the file values on load.
type AssistConfig struct {
	APIKey   string `json:"api_key,omitempty" env:"AI_API_KEY"`
	Endpoint string `json:"api_endpoint,omitempty" env:"AI_API_ENDPOINT"`
	Model    string `json:"model,omitempty" env:"AI_MODEL"`
}

// Config holds dinghy user configuration.
type Config struct {
	Theme        string       `json:"theme"`
	Homepage     string       `json:"homepage"`
	SearchEngine string       `json:"search_engine"` // host search queries are sent to
	Assist       AssistConfig `json:"assist"`
	path         string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:        "default",
		Homepage:     "",
		SearchEngine: "www.google.com",
	}
}

// LoadConfig loads configuration from the standard config directory, writing
// the defaults on first run, then applies environment overrides to the assist
// section.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.json")
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		cfg.Save()
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.path = path
	}

	if err := env.Parse(&cfg.Assist); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// ConfigPath returns the location of the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", ".local", "share")
}

func configDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", ".config")
}

// platformDir resolves the per-OS application directory. On Linux and the
// BSDs the XDG variable wins, then the dotted fallback under the home dir.
func platformDir(xdgVar string, unixParts ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "dinghy"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "dinghy"), nil
		}
		return filepath.Join(home, ".dinghy"), nil
	default:
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, "dinghy"), nil
		}
		parts := append([]string{home}, unixParts...)
		parts = append(parts, "dinghy")
		return filepath.Join(parts...), nil
	}
}
