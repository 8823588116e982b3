/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/fincoach/internal/fincoach/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks an error that has already been shown to the user.
var errReported = errors.New("already reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fincoach",
	Short: "A terminal client for an AI financial coach",
	Long: `fincoach talks to an AI-backed financial advice service.
Chat with the coach, check suspicious content for fraud, and run budget,
savings and investment projections from the terminal.
You can configure the tool using a TOML configuration file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fincoach/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (forces debug logging)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env file in the working directory may carry FINCOACH_* variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error reading .env file: %v\n", err)
	}

	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("FINCOACH")
	viper.AutomaticEnv()

	// Determine config directory for user config
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "fincoach")

	// Note: Later directories in the array take precedence over earlier ones
	defaultScenarioDirs := []string{
		"/usr/share/fincoach/scenarios",
		"/usr/local/share/fincoach/scenarios",
		filepath.Join(userConfigDir, "scenarios"),
	}
	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "scenarios"))

	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("timeout", defaultConfig.Timeout)
	viper.SetDefault("ai_timeout", defaultConfig.AITimeout)
	viper.SetDefault("user_mode", defaultConfig.UserMode)
	viper.SetDefault("scenario_dirs", defaultScenarioDirs)
	viper.SetDefault("state_path", defaultConfig.StatePath)
	viper.SetDefault("transcript_retention_days", defaultConfig.TranscriptRetentionDays)
	viper.SetDefault("log_level", defaultConfig.LogLevel)
	viper.SetDefault("log_file", defaultConfig.LogFile)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		for _, path := range []string{"/etc/fincoach", "/usr/local/etc/fincoach"} {
			viper.AddConfigPath(path)
		}
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded system-wide config:", viper.ConfigFileUsed())
			}
		}

		// Load user config (higher priority) - merge with system config
		viper.AddConfigPath(userConfigDir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else if verbose {
				fmt.Fprintln(os.Stderr, "Merged user config:", viper.ConfigFileUsed())
			}
		} else if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			}
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  FINCOACH_BASE_URL:", viper.GetString("base_url"))
		fmt.Fprintln(os.Stderr, "  FINCOACH_USER_MODE:", viper.GetString("user_mode"))
		fmt.Fprintln(os.Stderr, "  FINCOACH_TIMEOUT:", viper.GetDuration("timeout"))
		fmt.Fprintln(os.Stderr, "  FINCOACH_AI_TIMEOUT:", viper.GetDuration("ai_timeout"))
		fmt.Fprintln(os.Stderr, "  FINCOACH_SCENARIO_DIRS:", viper.GetStringSlice("scenario_dirs"))
	}
}
