/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/longkey1/fincoach/internal/scenario"
	"github.com/spf13/cobra"
)

var withDir bool

// scenariosCmd represents the scenarios command
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List quick-start scenarios",
	Long: `List the built-in quick-start scenarios and those found in the configured
scenario directories. Directories are scanned recursively; a file at
${scenario_dir}/retire/early.toml is listed as "retire/early".

Scenario files are TOML:
title   = "Plan a wedding budget"
input   = "Help me budget a wedding for {{guests}} guests"
context = "optional context sent with the message"
mode    = "student"   # optional

Later directories take precedence, and a file named like a built-in replaces it.
If you want to see which directory each scenario comes from, use the --with-dir option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		catalog := scenario.NewCatalog(a.cfg.ScenarioDirs, a.logger)
		all, err := catalog.List()
		if err != nil {
			return err
		}

		fmt.Printf("Available scenarios (%d found):\n\n", len(all))
		builtins := len(scenario.Builtins())
		for i, s := range all {
			key := s.Name
			if i < builtins {
				key = fmt.Sprintf("%d %s", i+1, s.Name)
			}
			line := fmt.Sprintf("  %-24s %s", key, s.DisplayTitle())
			if withDir {
				dir := s.Dir
				if dir == "" {
					dir = "built-in"
				}
				line += fmt.Sprintf(" (from %s)", dir)
			}
			fmt.Println(line)
		}

		fmt.Printf("\nUse a scenario with: fincoach chat --scenario <name|number> [message]\n")
		fmt.Printf("Scenario directories: %v\n", catalog.Dirs())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	scenariosCmd.Flags().BoolVar(&withDir, "with-dir", false, "Show the directory each scenario was found in")
}
