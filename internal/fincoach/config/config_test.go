package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDefaults(t *testing.T, cfg *Config) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetDefault("base_url", cfg.BaseURL)
	viper.SetDefault("timeout", cfg.Timeout)
	viper.SetDefault("ai_timeout", cfg.AITimeout)
	viper.SetDefault("user_mode", cfg.UserMode)
	viper.SetDefault("scenario_dirs", cfg.ScenarioDirs)
	viper.SetDefault("state_path", cfg.StatePath)
	viper.SetDefault("transcript_retention_days", cfg.TranscriptRetentionDays)
	viper.SetDefault("log_level", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	setDefaults(t, NewDefaultConfig(filepath.Join(dir, "scenarios")))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.AITimeout)
	assert.Equal(t, []string{filepath.Join(dir, "scenarios")}, cfg.ScenarioDirs)
	assert.True(t, filepath.IsAbs(cfg.StatePath))
	assert.Equal(t, "state.db", filepath.Base(cfg.StatePath))
	assert.Equal(t, 30, cfg.TranscriptRetentionDays)
}

func TestLoadConfigDurationStrings(t *testing.T) {
	setDefaults(t, NewDefaultConfig(t.TempDir()))
	viper.Set("timeout", "5s")
	viper.Set("ai_timeout", "3m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Minute, cfg.AITimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "negative ai timeout", mutate: func(c *Config) { c.AITimeout = -time.Second }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.UserMode = "retiree" }, wantErr: true},
		{name: "student mode", mutate: func(c *Config) { c.UserMode = "student" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig("/tmp/scenarios")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.SetConfigFile(filepath.Join(dir, "config.toml"))

	got, err := ResolvePath("state.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "state.db"), got)

	got, err = ResolvePath("/var/lib/fincoach/state.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/fincoach/state.db", got)
}
