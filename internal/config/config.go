// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "todocli"

	// TokenFile is the stored access token filename.
	TokenFile = "token.json"

	// DefaultBaseURL is the todo service base URL used when neither
	// the --api flag nor TODOCLI_API_URL is set.
	DefaultBaseURL = "http://localhost:8000"

	// BaseURLEnv is the environment variable overriding the base URL.
	BaseURLEnv = "TODOCLI_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the todo service base URL.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and base URL. Empty arguments select the defaults.
func New(configDir, baseURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if baseURL == "" {
		baseURL = BaseURLFromEnv()
	}
	return &Config{Dir: dir, BaseURL: baseURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// BaseURLFromEnv returns TODOCLI_API_URL if set, otherwise DefaultBaseURL.
func BaseURLFromEnv() string {
	if url := os.Getenv(BaseURLEnv); url != "" {
		return url
	}
	return DefaultBaseURL
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
