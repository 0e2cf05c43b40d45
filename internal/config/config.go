package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aryankumar/convoy/internal/scheduler"
	"github.com/aryankumar/convoy/internal/util"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".convoy"
	defaultConfigDir  = ".convoy"
)

// Manager handles convoy configuration
type Manager struct {
	configPath string
	config     *ConvoyConfig
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &ConvoyConfig{},
	}
}

// Load loads the convoy configuration from file
func (m *Manager) Load() (*ConvoyConfig, error) {
	// Set up config file path
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		// Try multiple locations
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// Check ~/.convoy/config.yaml
		m.viper.AddConfigPath(filepath.Join(home, defaultConfigDir))
		// Check ~/.convoy.yaml
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	// Set environment variable support
	m.viper.SetEnvPrefix("CONVOY")
	m.viper.AutomaticEnv()

	// Initialize config to ensure defaults are set even for empty configs
	m.config = &ConvoyConfig{}

	// Read config file
	if err := m.viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// File doesn't exist, apply defaults and return
		m.applyDefaults()
		return m.config, nil
	}

	// Unmarshal into config struct
	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults
	m.applyDefaults()

	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	return m.config, nil
}

// Save saves the current configuration to file
func (m *Manager) Save() error {
	if m.configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, defaultConfigDir)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		m.configPath = filepath.Join(configDir, "config.yaml")
	}

	// Ensure directory exists
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *ConvoyConfig {
	return m.config
}

// ConfigFileUsed returns the path of the config file Load read, or an
// empty string when no file was found
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Defaults.Parallel == 0 {
		m.config.Defaults.Parallel = 4
	}

	if m.config.Defaults.OnError == "" {
		m.config.Defaults.OnError = scheduler.Drain.String()
	}

	if m.config.Defaults.Timeout == 0 {
		m.config.Defaults.Timeout = 10 * time.Minute
	}

	if m.config.Defaults.OutputFormat == "" {
		m.config.Defaults.OutputFormat = "table"
	}
}

// Validate checks the configuration for invalid values
func (c *ConvoyConfig) Validate() error {
	if c.Defaults.Parallel < 1 {
		return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
			util.NewValidationError("defaults.parallel", c.Defaults.Parallel, "must be positive"))
	}

	if _, err := scheduler.ParsePolicy(c.Defaults.OnError); err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
			util.NewValidationError("defaults.onError", c.Defaults.OnError, "must be abort, drain or continue"))
	}

	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
			util.NewValidationError("defaults.timeout", c.Defaults.Timeout, "must not be negative"))
	}

	switch c.Defaults.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
			util.NewValidationError("defaults.outputFormat", c.Defaults.OutputFormat, "must be table, json or yaml"))
	}

	return nil
}
