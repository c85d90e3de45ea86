package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhubert/tutor/internal/errors"
)

// DefaultAPIBase is the backend address used when nothing else is configured.
const DefaultAPIBase = "http://localhost:8000"

// Environment variables consulted by Load.
const (
	EnvConfigDir = "TUTOR_CONFIG_DIR"
	EnvAPIBase   = "TUTOR_API_BASE"
)

// Config holds the client configuration
type Config struct {
	APIBase               string `json:"api_base,omitempty"`                // Backend base URL
	Theme                 string `json:"theme,omitempty"`                   // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification when a quiz is ready
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // 0 means no timeout

	// apiOverride holds a value from the environment or a flag. It wins over
	// APIBase but is never written back to disk.
	apiOverride string

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tutor"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment are left untouched.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// Load reads the config from disk, or creates a new one if it doesn't exist.
// TUTOR_API_BASE, when set, overrides the file's api_base.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.tutor", err)
	}

	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	cfg.ensureInitialized()
	cfg.apiOverride = os.Getenv(EnvAPIBase)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// New returns an unsaved config with defaults, for tests and one-off commands.
func New() *Config {
	cfg := &Config{}
	cfg.ensureInitialized()
	return cfg
}

// ensureInitialized fills in defaults for empty fields.
//
// Thread-safety: only call this before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validateBaseURL(c.APIBase); err != nil {
		return err
	}
	if c.apiOverride != "" {
		if err := validateBaseURL(c.apiOverride); err != nil {
			return err
		}
	}
	if c.RequestTimeoutSeconds < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must not be negative, got %d", c.RequestTimeoutSeconds))
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("invalid api base %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid(fmt.Sprintf("api base %q must use http or https", raw))
	}
	if u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("api base %q has no host", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filePath == "" {
		path, err := configPath()
		if err != nil {
			return errors.ConfigSaveFailed("~/.tutor", err)
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetAPIBase returns the effective backend base URL.
func (c *Config) GetAPIBase() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.apiOverride != "" {
		return c.apiOverride
	}
	return c.APIBase
}

// SetAPIBase sets the persisted backend base URL and drops any override.
func (c *Config) SetAPIBase(base string) error {
	if err := validateBaseURL(base); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIBase = base
	c.apiOverride = ""
	return nil
}

// OverrideAPIBase sets a base URL for this run only (for example from --api).
func (c *Config) OverrideAPIBase(base string) error {
	if err := validateBaseURL(base); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiOverride = base
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// RequestTimeout returns the per-request timeout. Zero means none.
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SetRequestTimeout sets the per-request timeout in seconds. Zero means none.
func (c *Config) SetRequestTimeout(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RequestTimeoutSeconds = max(seconds, 0)
}
