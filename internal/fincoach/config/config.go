package config

import (
	"fmt"
	"time"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/spf13/viper"
)

// Config holds the configuration for the fincoach client
type Config struct {
	BaseURL                 string        `toml:"base_url" mapstructure:"base_url"`
	Timeout                 time.Duration `toml:"timeout" mapstructure:"timeout"`       // calculator calls
	AITimeout               time.Duration `toml:"ai_timeout" mapstructure:"ai_timeout"` // chat and fraud calls, tolerates model cold start
	UserMode                string        `toml:"user_mode" mapstructure:"user_mode"`
	ScenarioDirs            []string      `toml:"scenario_dirs" mapstructure:"scenario_dirs"`
	StatePath               string        `toml:"state_path" mapstructure:"state_path"`
	TranscriptRetentionDays int           `toml:"transcript_retention_days" mapstructure:"transcript_retention_days"` // Number of days to retain transcripts (default: 30)
	LogLevel                string        `toml:"log_level" mapstructure:"log_level"`
	LogFile                 string        `toml:"log_file" mapstructure:"log_file"`
}

// GetBaseURL returns the service base URL
func (c *Config) GetBaseURL() string {
	return c.BaseURL
}

// GetUserMode parses the configured user mode
func (c *Config) GetUserMode() (fincoach.UserMode, error) {
	return fincoach.ParseUserMode(c.UserMode)
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(scenarioDir string) *Config {
	return &Config{
		BaseURL:                 "http://localhost:8000",
		Timeout:                 30 * time.Second,
		AITimeout:               10 * time.Minute,
		UserMode:                string(fincoach.DefaultMode),
		ScenarioDirs:            []string{scenarioDir},
		StatePath:               "state.db",
		TranscriptRetentionDays: 30,
		LogLevel:                "warn",
		LogFile:                 "",
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Convert scenario directories to absolute paths
	for i, dir := range config.ScenarioDirs {
		absPath, err := ResolvePath(dir)
		if err != nil {
			return nil, fmt.Errorf("error resolving scenario directory path '%s': %v", dir, err)
		}
		config.ScenarioDirs[i] = absPath
	}

	statePath, err := ResolvePath(config.StatePath)
	if err != nil {
		return nil, fmt.Errorf("error resolving state path '%s': %v", config.StatePath, err)
	}
	config.StatePath = statePath

	if config.LogFile != "" {
		logFile, err := ResolvePath(config.LogFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving log file path '%s': %v", config.LogFile, err)
		}
		config.LogFile = logFile
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the values that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is not configured. Set it in config file (base_url) or environment variable (FINCOACH_BASE_URL)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("ai_timeout must be positive (got %s)", c.AITimeout)
	}
	if _, err := c.GetUserMode(); err != nil {
		return fmt.Errorf("invalid user_mode: %w", err)
	}
	return nil
}
