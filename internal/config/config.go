// Package config handles the configuration directory, token cache path,
// and environment-derived settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "mstodo"

	// TokenCacheFile is the serialized token cache filename.
	TokenCacheFile = "token_cache.json"

	// DefaultGraphURL is the base resource path for To Do task lists.
	DefaultGraphURL = "https://graph.microsoft.com/beta/me/todo/lists/"

	// DefaultTenant is the identity tenant for personal Microsoft accounts.
	DefaultTenant = "consumers"

	// DefaultRedirectURI is the redirect URI registered for the app,
	// used by the manual authorization-code fallback.
	DefaultRedirectURI = "http://localhost"
)

// Config holds configuration paths and settings for a single run.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ClientID is the Azure app registration client ID.
	ClientID string

	// Tenant is the identity tenant ("consumers", "common", or a tenant ID).
	Tenant string

	// GraphBaseURL is the task-list resource base URL, with trailing slash.
	GraphBaseURL string

	// RedirectURI is the redirect URI for the manual auth flow.
	RedirectURI string

	// Strict makes non-success API reads fail the run instead of being
	// treated as empty results.
	Strict bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory and
// settings taken from the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:          dir,
		ClientID:     os.Getenv("MSTODO_CLIENT_ID"),
		Tenant:       envOr("MSTODO_TENANT", DefaultTenant),
		GraphBaseURL: envOr("MSTODO_GRAPH_URL", DefaultGraphURL),
		RedirectURI:  envOr("MSTODO_REDIRECT_URI", DefaultRedirectURI),
	}
	return cfg, nil
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

// TokenCachePath returns the path to the serialized token cache file.
func (c *Config) TokenCachePath() string {
	return filepath.Join(c.Dir, TokenCacheFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasTokenCache checks if the token cache file exists.
func (c *Config) HasTokenCache() bool {
	_, err := os.Stat(c.TokenCachePath())
	return err == nil
}

// RemoveTokenCache deletes the token cache file.
func (c *Config) RemoveTokenCache() error {
	return os.Remove(c.TokenCachePath())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
