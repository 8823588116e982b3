package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, base_url, timeout, ai_timeout, user_mode, scenario_dirs, state_path, transcript_retention_days, log_level, log_file"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  fincoach config              # Show all configuration
  fincoach config base_url     # Show only the service base URL
  fincoach config ai_timeout   # Show only the chat and fraud timeout`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()
		cfg := a.cfg

		values := []struct {
			field string
			label string
			value string
		}{
			{"configfile", "ConfigFile", viper.ConfigFileUsed()},
			{"base_url", "BaseURL", cfg.BaseURL},
			{"timeout", "Timeout", cfg.Timeout.String()},
			{"ai_timeout", "AITimeout", cfg.AITimeout.String()},
			{"user_mode", "UserMode", cfg.UserMode},
			{"scenario_dirs", "ScenarioDirectories", strings.Join(cfg.ScenarioDirs, ",")},
			{"state_path", "StatePath", cfg.StatePath},
			{"transcript_retention_days", "TranscriptRetentionDays", fmt.Sprint(cfg.TranscriptRetentionDays)},
			{"log_level", "LogLevel", cfg.LogLevel},
			{"log_file", "LogFile", cfg.LogFile},
		}

		if len(args) > 0 {
			field := strings.ToLower(args[0])
			for _, v := range values {
				if v.field == field || strings.ReplaceAll(v.field, "_", "") == field {
					fmt.Println(v.value)
					return nil
				}
			}
			return fmt.Errorf("unknown field: %s (available fields: %s)", args[0], configFields)
		}

		for _, v := range values {
			fmt.Printf("%s: %s\n", v.label, v.value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
