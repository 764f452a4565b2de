package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourusername/linkedin-connect/internal/connection"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "./config/config.yaml"

	BackendRod      = "rod"
	BackendChromedp = "chromedp"
)

// Config represents the application configuration
type Config struct {
	LinkedIn      LinkedInConfig   `yaml:"linkedin"`
	Search        SearchConfig     `yaml:"search"`
	Connection    ConnectionConfig `yaml:"connection"`
	Browser       BrowserConfig    `yaml:"browser"`
	TwoFactor     TwoFactorConfig  `yaml:"two_factor"`
	Pacing        PacingConfig     `yaml:"pacing"`
	SelectorsFile string           `yaml:"selectors_file"`
	Database      DatabaseConfig   `yaml:"database"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// LinkedInConfig contains LinkedIn credentials
type LinkedInConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// SearchConfig contains search parameters
type SearchConfig struct {
	Keywords string `yaml:"keywords"`
	MaxPages int    `yaml:"max_pages"`
}

// ConnectionConfig contains the note templates
type ConnectionConfig struct {
	Placeholder string   `yaml:"placeholder"`
	Messages    []string `yaml:"messages"`
}

// BrowserConfig controls the browser backend and its profile
type BrowserConfig struct {
	Backend              string `yaml:"backend"`
	Headless             bool   `yaml:"headless"`
	Stealth              bool   `yaml:"stealth"`
	RandomizeUserAgent   bool   `yaml:"randomize_user_agent"`
	ProfileRoot          string `yaml:"profile_root"`
	WaitTimeoutSeconds   int    `yaml:"wait_timeout_seconds"`
	ActionTimeoutSeconds int    `yaml:"action_timeout_seconds"`
}

// TwoFactorConfig bounds the wait for a 2FA code; 0 waits forever
type TwoFactorConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// PacingConfig holds the pause windows between UI actions
type PacingConfig struct {
	ActionMinSeconds int `yaml:"action_min_seconds"`
	ActionMaxSeconds int `yaml:"action_max_seconds"`
	NoteMinSeconds   int `yaml:"note_min_seconds"`
	NoteMaxSeconds   int `yaml:"note_max_seconds"`
	PageMinSeconds   int `yaml:"page_min_seconds"`
	PageMaxSeconds   int `yaml:"page_max_seconds"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level    string `yaml:"level"`
	ToFile   bool   `yaml:"to_file"`
	FilePath string `yaml:"file_path"`
}

// Default returns the configuration used for anything the file leaves out
func Default() Config {
	return Config{
		Search: SearchConfig{
			MaxPages: 20,
		},
		Connection: ConnectionConfig{
			Placeholder: connection.DefaultPlaceholder,
		},
		Browser: BrowserConfig{
			Backend:              BackendRod,
			Stealth:              true,
			ProfileRoot:          "./linkedin",
			WaitTimeoutSeconds:   10,
			ActionTimeoutSeconds: 15,
		},
		Pacing: PacingConfig{
			ActionMinSeconds: 2,
			ActionMaxSeconds: 5,
			NoteMinSeconds:   0,
			NoteMaxSeconds:   5,
			PageMinSeconds:   2,
			PageMaxSeconds:   5,
		},
		Database: DatabaseConfig{
			Path: "./data/history.db",
		},
		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "./logs/linkedin-connect.log",
		},
	}
}

// Load loads configuration from the YAML file named by CONFIG_PATH (or the
// default path), after loading .env and expanding ${VAR:default} references
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates the configuration at path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// selectors_file is relative to the config file
	if cfg.SelectorsFile != "" && !filepath.IsAbs(cfg.SelectorsFile) {
		cfg.SelectorsFile = filepath.Join(filepath.Dir(path), cfg.SelectorsFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LinkedIn.Email == "" {
		return fmt.Errorf("LinkedIn email is required")
	}
	if c.LinkedIn.Password == "" {
		return fmt.Errorf("LinkedIn password is required")
	}

	if c.Search.Keywords == "" {
		return fmt.Errorf("search keywords are required")
	}
	if c.Search.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive")
	}

	if c.Connection.Placeholder == "" {
		return fmt.Errorf("connection placeholder is required")
	}
	if len(c.Connection.Messages) == 0 {
		return fmt.Errorf("at least one connection message is required")
	}

	switch c.Browser.Backend {
	case BackendRod, BackendChromedp:
	default:
		return fmt.Errorf("invalid browser backend: %s (must be rod or chromedp)", c.Browser.Backend)
	}
	if c.Browser.ProfileRoot == "" {
		return fmt.Errorf("browser profile_root is required")
	}
	if c.Browser.WaitTimeoutSeconds <= 0 {
		return fmt.Errorf("wait_timeout_seconds must be positive")
	}
	if c.Browser.ActionTimeoutSeconds < 0 {
		return fmt.Errorf("action_timeout_seconds must be non-negative")
	}
	if c.TwoFactor.TimeoutSeconds < 0 {
		return fmt.Errorf("two_factor timeout_seconds must be non-negative")
	}

	windows := []struct {
		name     string
		min, max int
	}{
		{"action", c.Pacing.ActionMinSeconds, c.Pacing.ActionMaxSeconds},
		{"note", c.Pacing.NoteMinSeconds, c.Pacing.NoteMaxSeconds},
		{"page", c.Pacing.PageMinSeconds, c.Pacing.PageMaxSeconds},
	}
	for _, w := range windows {
		if w.min < 0 {
			return fmt.Errorf("%s_min_seconds must be non-negative", w.name)
		}
		if w.max < w.min {
			return fmt.Errorf("%s_max_seconds must be >= %s_min_seconds", w.name, w.name)
		}
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// WaitTimeout bounds element waits
func (c *Config) WaitTimeout() time.Duration {
	return seconds(c.Browser.WaitTimeoutSeconds)
}

// ActionTimeout bounds single clicks and keystrokes; 0 means unbounded
func (c *Config) ActionTimeout() time.Duration {
	return seconds(c.Browser.ActionTimeoutSeconds)
}

// TwoFactorTimeout bounds the wait for a 2FA code; 0 means unbounded
func (c *Config) TwoFactorTimeout() time.Duration {
	return seconds(c.TwoFactor.TimeoutSeconds)
}

// ActionDelay returns the pause window between UI actions
func (c *Config) ActionDelay() (time.Duration, time.Duration) {
	return seconds(c.Pacing.ActionMinSeconds), seconds(c.Pacing.ActionMaxSeconds)
}

// NoteDelay returns the pause window after typing a note
func (c *Config) NoteDelay() (time.Duration, time.Duration) {
	return seconds(c.Pacing.NoteMinSeconds), seconds(c.Pacing.NoteMaxSeconds)
}

// PageDelay returns the pause window between result pages
func (c *Config) PageDelay() (time.Duration, time.Duration) {
	return seconds(c.Pacing.PageMinSeconds), seconds(c.Pacing.PageMaxSeconds)
}
