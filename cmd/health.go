package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the advice service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		h, err := a.client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %w", a.cfg.BaseURL, err)
		}
		if !h.OK() {
			return fmt.Errorf("%s reported status %q", a.cfg.BaseURL, h.Status)
		}
		fmt.Printf("%s is up\n", a.cfg.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
