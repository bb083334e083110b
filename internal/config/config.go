// Package config handles the XDG configuration directory, its files and the
// optional config.yaml settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kconfig "github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile receives log lines while the task screen owns the terminal.
	LogFile = "taskpad.log"
)

// Default UI values.
const (
	DefaultTitle       = "Task Manager"
	DefaultPlaceholder = "Enter a task..."
	DefaultAccent      = "#6200EA"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds values from config.yaml, or defaults.
	Settings Settings
}

// Settings mirrors config.yaml.
type Settings struct {
	UI     UI     `json:"ui"`
	Export Export `json:"export"`
	Log    Log    `json:"log"`
}

// UI configures the terminal screen.
type UI struct {
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
	Accent      string `json:"accent"`
}

// Export configures the Google Tasks export.
type Export struct {
	// List is the target list name; empty means the default list.
	List string `json:"list"`
}

// Log configures logging.
type Log struct {
	Level string `json:"level"`
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		UI: UI{
			Title:       DefaultTitle,
			Placeholder: DefaultPlaceholder,
			Accent:      DefaultAccent,
		},
		Log: Log{Level: "warn"},
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpad or $HOME/.config/taskpad.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// LogPath returns the path to the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSettings checks if config.yaml exists.
func (c *Config) HasSettings() bool {
	_, err := os.Stat(c.SettingsPath())
	return err == nil
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// LoadSettings reads config.yaml into c.Settings.
// A missing file leaves the defaults in place; blank values fall back to defaults.
func (c *Config) LoadSettings() error {
	settings := DefaultSettings()
	if !c.HasSettings() {
		c.Settings = settings
		return nil
	}

	src := kconfig.New(kconfig.WithSource(file.NewSource(c.SettingsPath())))
	defer src.Close()

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load %s: %w", SettingsFile, err)
	}
	if err := src.Scan(&settings); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	c.Settings = settings.withDefaults()
	return nil
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if strings.TrimSpace(s.UI.Title) == "" {
		s.UI.Title = def.UI.Title
	}
	if strings.TrimSpace(s.UI.Placeholder) == "" {
		s.UI.Placeholder = def.UI.Placeholder
	}
	if strings.TrimSpace(s.UI.Accent) == "" {
		s.UI.Accent = def.UI.Accent
	}
	if strings.TrimSpace(s.Log.Level) == "" {
		s.Log.Level = def.Log.Level
	}
	s.Export.List = strings.TrimSpace(s.Export.List)
	return s
}
