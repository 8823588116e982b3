package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/longkey1/fincoach/internal/conversation"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/spf13/cobra"
)

var assumeYes bool

// transcriptsCmd represents the transcripts command
var transcriptsCmd = &cobra.Command{
	Use:     "transcripts",
	Aliases: []string{"transcript"},
	Short:   "Manage saved conversations",
	Long: `Manage saved conversations including listing, viewing, renaming and deleting them.

Transcripts are kept as JSON files in the transcripts directory next to the config file.`,
}

// transcriptsListCmd represents the transcripts list command
var transcriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all transcripts",
	Long:  `List all saved conversations sorted by most recently updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}
		list, err := store.List()
		if err != nil {
			return fmt.Errorf("listing transcripts: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No transcripts found.")
			fmt.Println("\nCreate a new transcript with:")
			fmt.Println("  fincoach chat --new-transcript \"your message\"")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMODE\tCREATED\tMESSAGES\tNAME")
		fmt.Fprintln(w, "--\t----\t-------\t--------\t----")
		for _, c := range list {
			name := c.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				c.GetShortID(),
				c.Mode,
				c.CreatedAt.Format("2006-01-02"),
				c.MessageCount(),
				name,
			)
		}
		w.Flush()

		fmt.Println("\nUse 'fincoach transcripts show <id>' to view a transcript.")
		return nil
	},
}

// transcriptsShowCmd represents the transcripts show command
var transcriptsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a transcript",
	Long: `Show a saved conversation with every message.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}
		c, err := store.FindByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding transcript: %w", err)
		}

		fmt.Printf("Transcript: %s\n", c.ID)
		if c.Name != "" {
			fmt.Printf("Name: %s\n", c.Name)
		}
		fmt.Printf("Mode: %s\n", c.Mode)
		fmt.Printf("Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated: %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Messages: %d\n", c.MessageCount())
		fmt.Println()

		messages := c.Messages()
		if len(messages) == 0 {
			fmt.Println("No messages in this transcript.")
			return nil
		}

		for i, msg := range messages {
			fmt.Printf("[%d] %s\n%s\n\n", i+1, msg.Timestamp.Format("2006-01-02 15:04:05"), render.Message(msg, 0))
		}

		fmt.Printf("Continue this conversation with:\n  fincoach chat -s %s \"your message\"\n", c.GetShortID())
		return nil
	},
}

// transcriptsDeleteCmd represents the transcripts delete command
var transcriptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transcript",
	Long: `Delete a saved conversation permanently.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent transcript.

Warning: This action cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}
		c, err := store.FindByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding transcript: %w", err)
		}

		if !confirm(fmt.Sprintf("Are you sure you want to delete transcript %s?", c.GetShortID())) {
			fmt.Println("Deletion cancelled.")
			return nil
		}

		if err := store.Delete(c.ID); err != nil {
			return fmt.Errorf("deleting transcript: %w", err)
		}
		fmt.Printf("Transcript %s deleted successfully.\n", c.GetShortID())
		return nil
	},
}

// transcriptsRenameCmd represents the transcripts rename command
var transcriptsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a transcript",
	Long: `Rename a saved conversation.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent transcript.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}
		c, err := store.FindByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding transcript: %w", err)
		}

		c.Name = args[1]
		if err := store.Save(c); err != nil {
			return fmt.Errorf("saving transcript: %w", err)
		}
		fmt.Printf("Transcript %s renamed to \"%s\".\n", c.GetShortID(), c.Name)
		return nil
	},
}

// transcriptsClearCmd represents the transcripts clear command
var transcriptsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old transcripts",
	Long: `Delete old transcripts permanently.

By default, deletes transcripts created more than transcript_retention_days (30) days ago.
Use --before to specify a different date, or --all to delete all transcripts.

Warning: This action cannot be undone.

Examples:
  fincoach transcripts clear                      # Delete transcripts older than the retention period
  fincoach transcripts clear --before 2024-01-01  # Delete transcripts created before 2024-01-01
  fincoach transcripts clear --before 2024-12     # Delete transcripts created before 2024-12-01
  fincoach transcripts clear --all                # Delete all transcripts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		beforeDateStr, _ := cmd.Flags().GetString("before")
		deleteAll, _ := cmd.Flags().GetBool("all")

		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}
		list, err := store.List()
		if err != nil {
			return fmt.Errorf("listing transcripts: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No transcripts to delete.")
			return nil
		}

		var toDelete []*conversation.Conversation
		var prompt string
		if deleteAll {
			toDelete = list
			prompt = fmt.Sprintf("Are you sure you want to delete all %d transcripts?", len(toDelete))
		} else {
			var beforeDate time.Time
			if beforeDateStr != "" {
				if beforeDate, err = parseDate(beforeDateStr); err != nil {
					return fmt.Errorf("parsing date: %w", err)
				}
			} else {
				a, err := loadApp(false)
				if err != nil {
					return err
				}
				defer a.Close()
				beforeDate = time.Now().AddDate(0, 0, -a.cfg.TranscriptRetentionDays)
			}

			toDelete = createdBefore(list, beforeDate)
			if len(toDelete) == 0 {
				fmt.Printf("No transcripts found created before %s.\n", beforeDate.Format("2006-01-02"))
				return nil
			}
			prompt = fmt.Sprintf("Are you sure you want to delete %d transcripts created before %s?",
				len(toDelete), beforeDate.Format("2006-01-02"))
		}

		if !confirm(prompt) {
			fmt.Println("Deletion cancelled.")
			return nil
		}

		deleted, failed := 0, 0
		for _, c := range toDelete {
			if err := store.Delete(c.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to delete transcript %s: %v\n", c.GetShortID(), err)
				failed++
			} else {
				deleted++
			}
		}

		fmt.Printf("Successfully deleted %d transcripts", deleted)
		if failed > 0 {
			fmt.Printf(" (%d failed)", failed)
		}
		fmt.Println(".")
		return nil
	},
}

// createdBefore returns the conversations created before t.
func createdBefore(list []*conversation.Conversation, t time.Time) []*conversation.Conversation {
	var out []*conversation.Conversation
	for _, c := range list {
		if c.CreatedAt.Before(t) {
			out = append(out, c)
		}
	}
	return out
}

// parseDate parses a date string in various formats and returns a time.Time
// Supported formats: YYYY-MM-DD, YYYY-MM, YYYY
func parseDate(dateStr string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD, YYYY-MM, or YYYY)", dateStr)
}

// confirm asks a yes/no question on stdout unless --yes was given.
func confirm(question string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", question)
	var response string
	fmt.Scanln(&response)
	return strings.EqualFold(response, "y")
}

func init() {
	rootCmd.AddCommand(transcriptsCmd)
	transcriptsCmd.AddCommand(transcriptsListCmd)
	transcriptsCmd.AddCommand(transcriptsShowCmd)
	transcriptsCmd.AddCommand(transcriptsDeleteCmd)
	transcriptsCmd.AddCommand(transcriptsRenameCmd)
	transcriptsCmd.AddCommand(transcriptsClearCmd)

	transcriptsCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	transcriptsClearCmd.Flags().String("before", "", "Delete transcripts created before this date (YYYY-MM-DD, YYYY-MM, or YYYY)")
	transcriptsClearCmd.Flags().Bool("all", false, "Delete all transcripts")
}
