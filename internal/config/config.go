package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Default values applied when the config file is missing or a field is unset.
const (
	DefaultTheme              = "dark-purple"
	DefaultDiagramCommand     = "mmdc"
	DefaultDiagramTimeoutSecs = 30
	DefaultLogLevel           = "info"
)

// Config holds the application configuration
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "light")
	DiagramCommand       string `json:"diagram_command,omitempty"`       // External renderer binary for mermaid diagrams
	DiagramTimeoutSecs   int    `json:"diagram_timeout_secs,omitempty"`  // Per-render timeout for the diagram command
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications on render failures and replies
	LogLevel             string `json:"log_level,omitempty"`             // Minimum log level ("debug", "info", "warn", "error")

	WelcomeShown bool `json:"welcome_shown,omitempty"` // Whether welcome modal has been shown

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Fill unset fields before Validate() since Validate() only reads
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills zero-valued fields with their defaults.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines).
func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.DiagramCommand == "" {
		c.DiagramCommand = DefaultDiagramCommand
	}
	if c.DiagramTimeoutSecs <= 0 {
		c.DiagramTimeoutSecs = DefaultDiagramTimeoutSecs
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call applyDefaults() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.DiagramTimeoutSecs <= 0 {
		return fmt.Errorf("diagram_timeout_secs must be positive, got %d", c.DiagramTimeoutSecs)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetTheme returns the UI theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the UI theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDiagramCommand returns the external diagram renderer binary
func (c *Config) GetDiagramCommand() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DiagramCommand
}

// SetDiagramCommand sets the external diagram renderer binary
func (c *Config) SetDiagramCommand(command string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DiagramCommand = command
}

// GetDiagramTimeout returns the per-render timeout as a duration
func (c *Config) GetDiagramTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.DiagramTimeoutSecs) * time.Second
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

// GetLogLevel returns the minimum log level
func (c *Config) GetLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogLevel
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
