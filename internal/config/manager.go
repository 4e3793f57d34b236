// Package config handles configuration management.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configDirName  = ".discovery-cli"
	configFileName = "config"
	configFileType = "json"
)

// Config holds all configuration options.
type Config struct {
	ServerURL             string `mapstructure:"server_url"`
	StateFile             string `mapstructure:"state_file"`
	HistoryFile           string `mapstructure:"history_file"`
	LogFile               string `mapstructure:"log_file"`
	Italics               bool   `mapstructure:"italics"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

// Manager handles configuration loading and saving.
type Manager struct {
	v       *viper.Viper
	cfgDir  string
	cfgFile string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(home, configDirName))
}

// NewManagerAt creates a manager rooted at a specific directory. Tests use
// this to avoid touching the real home directory.
func NewManagerAt(cfgDir string) (*Manager, error) {
	m := &Manager{
		v:       viper.New(),
		cfgDir:  cfgDir,
		cfgFile: filepath.Join(cfgDir, configFileName+"."+configFileType),
	}

	m.setDefaults()

	m.v.SetConfigName(configFileName)
	m.v.SetConfigType(configFileType)
	m.v.AddConfigPath(cfgDir)

	// Environment variable support
	m.v.SetEnvPrefix("DISCOVERY")
	m.v.AutomaticEnv()
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return m, nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	m.v.SetDefault("server_url", "http://localhost:8001")
	m.v.SetDefault("state_file", filepath.Join(m.cfgDir, "state.db"))
	m.v.SetDefault("history_file", filepath.Join(m.cfgDir, "history.jsonl"))
	m.v.SetDefault("log_file", filepath.Join(m.cfgDir, "discovery.log"))
	m.v.SetDefault("italics", false)
	m.v.SetDefault("request_timeout_seconds", 300)
}

// Load reads configuration from file and environment.
func (m *Manager) Load() (*Config, error) {
	if err := os.MkdirAll(m.cfgDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		ServerURL:             m.v.GetString("server_url"),
		StateFile:             m.v.GetString("state_file"),
		HistoryFile:           m.v.GetString("history_file"),
		LogFile:               m.v.GetString("log_file"),
		Italics:               m.v.GetBool("italics"),
		RequestTimeoutSeconds: m.v.GetInt("request_timeout_seconds"),
	}

	if err := m.validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.cfgDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.v.Set("server_url", cfg.ServerURL)
	m.v.Set("state_file", cfg.StateFile)
	m.v.Set("history_file", cfg.HistoryFile)
	m.v.Set("log_file", cfg.LogFile)
	m.v.Set("italics", cfg.Italics)
	m.v.Set("request_timeout_seconds", cfg.RequestTimeoutSeconds)

	return m.v.WriteConfigAs(m.cfgFile)
}

// validate checks configuration values.
func (m *Manager) validate(cfg *Config) error {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url: %s", cfg.ServerURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url scheme: %s", u.Scheme)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", cfg.RequestTimeoutSeconds)
	}
	return nil
}

// GetConfigDir returns the configuration directory path.
func (m *Manager) GetConfigDir() string {
	return m.cfgDir
}

// GetConfigFile returns the configuration file path.
func (m *Manager) GetConfigFile() string {
	return m.cfgFile
}

// ParseBoolean parses boolean strings (true, false, 1, 0, yes, no, on, off).
func ParseBoolean(value string, defaultValue bool) bool {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
