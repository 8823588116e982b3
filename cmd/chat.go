/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/auth"
	"github.com/longkey1/fincoach/internal/conversation"
	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/mutation"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/longkey1/fincoach/internal/scenario"
	chatui "github.com/longkey1/fincoach/internal/ui/chat"
	"github.com/spf13/cobra"
)

var (
	chatMode        string
	chatContext     string
	chatScenario    string
	chatArgs        []string
	transcriptID    string
	newTranscript   bool
	transcriptName  string
	chatInteractive bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the financial coach",
	Long: `Ask the financial coach a question and print the advice.

If no message is provided as an argument, it reads from stdin.
Use --scenario to start from a quick-start scenario (see 'fincoach scenarios').

Without --transcript or --new-transcript the exchange is not saved.
With --interactive (-i) a full-screen conversation view opens; every turn is
saved to a transcript.

The chat is only available when signed in (see 'fincoach signin').

Examples:
  fincoach chat "How should I budget as a college student?" -m student
  fincoach chat --scenario 1
  fincoach chat -n --name savings "How big should my emergency fund be?"
  fincoach chat -s latest "And where should I keep it?"
  fincoach chat -i -s latest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transcriptID != "" && newTranscript {
			return fmt.Errorf("cannot specify both --transcript and --new-transcript")
		}
		if chatInteractive && (len(args) > 0 || chatScenario != "") {
			return fmt.Errorf("the interactive view takes no message; use /1-/4 or type inside it")
		}

		a, err := loadApp(chatInteractive)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		guard, err := a.guard(ctx)
		if err != nil {
			return err
		}
		sess, _ := guard.Current()
		if auth.Gate(sess) == auth.ViewLanding {
			fmt.Println(render.Landing())
			return nil
		}

		mode, err := a.cfg.GetUserMode()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("mode") {
			if mode, err = fincoach.ParseUserMode(chatMode); err != nil {
				return err
			}
		}

		store, err := conversation.DefaultStore()
		if err != nil {
			return err
		}

		var conv *conversation.Conversation
		isNewTranscript := false
		switch {
		case transcriptID != "":
			if conv, err = store.FindByPrefix(transcriptID); err != nil {
				return fmt.Errorf("finding transcript: %w", err)
			}
			if cmd.Flags().Changed("mode") {
				conv.Mode = mode
			}
			a.logger.Debug("continuing transcript", "id", conv.ID, "mode", conv.Mode)
		default:
			conv = conversation.New(mode)
			conv.Name = transcriptName
			isNewTranscript = newTranscript || chatInteractive
		}

		if chatInteractive {
			if isNewTranscript {
				if err := store.Save(conv); err != nil {
					return fmt.Errorf("saving transcript: %w", err)
				}
			}
			return runInteractive(a, conv, store, sess.Email)
		}

		message, err := readInput(args)
		if err != nil {
			return err
		}

		scenarioContext := chatContext
		if chatScenario != "" {
			sc, err := scenario.NewCatalog(a.cfg.ScenarioDirs, a.logger).Find(chatScenario)
			if err != nil {
				return err
			}
			if message, err = sc.Render(message, chatArgs); err != nil {
				return fmt.Errorf("formatting scenario: %w", err)
			}
			if !cmd.Flags().Changed("context") {
				scenarioContext = sc.Context
			}
			if transcriptID == "" && !cmd.Flags().Changed("mode") {
				conv.Mode = sc.UserMode(conv.Mode)
			}
		}

		req := advisor.ChatRequest{UserInput: message, ScenarioContext: scenarioContext, UserMode: conv.Mode}
		if err := req.Validate(); err != nil {
			return err
		}

		persist := transcriptID != "" || isNewTranscript
		resp, err := askOnce(ctx, a.client, conv, req)
		if persist {
			if saveErr := store.Save(conv); saveErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save transcript: %v\n", saveErr)
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, render.Banner(err.Error()))
			return errReported
		}

		fmt.Println(render.Advice(resp.Response, 0))
		if verbose {
			fmt.Fprintf(os.Stderr, "\nProvider: %s\n", resp.Provider)
		}
		if resp.UsedFallback {
			fmt.Fprintln(os.Stderr, "\nNote: the service answered with its fallback provider.")
		}

		if isNewTranscript {
			fmt.Fprintf(os.Stderr, "\nTranscript created: %s\n", conv.GetShortID())
			fmt.Fprintf(os.Stderr, "Path: %s\n", store.Path(conv.ID))
			fmt.Fprintf(os.Stderr, "\nNext time, use:\n  fincoach chat -s %s \"your message\"\n", conv.GetShortID())
			fmt.Fprintf(os.Stderr, "For interactive mode, use:\n  fincoach chat -i -s %s\n", conv.GetShortID())
		}
		return nil
	},
}

// askOnce runs one turn: the user entry is appended first, then the request
// is issued, then exactly one terminal entry is appended.
func askOnce(ctx context.Context, client *advisor.Client, conv *conversation.Conversation, req advisor.ChatRequest) (*advisor.ChatResponse, error) {
	conv.AppendUser(req.UserInput)

	tracker := mutation.New[advisor.ChatResponse]("chat")
	done := make(chan bool)
	go showSpinner(done, "Waiting for the coach...")
	resp, _, err := tracker.Run(ctx, func(ctx context.Context) (advisor.ChatResponse, error) {
		r, err := client.Chat(ctx, req)
		if err != nil {
			return advisor.ChatResponse{}, err
		}
		return *r, nil
	})
	done <- true
	close(done)

	if err != nil {
		if _, appendErr := conv.AppendError(tracker.State().Message); appendErr != nil {
			return nil, errors.Join(err, appendErr)
		}
		return nil, err
	}
	if _, err := conv.AppendAssistant(resp.Response, resp.Provider); err != nil {
		return nil, err
	}
	return &resp, nil
}

// runInteractive opens the conversation view.
func runInteractive(a *app, conv *conversation.Conversation, store *conversation.Store, email string) error {
	model := chatui.New(chatui.Options{
		Client:       a.client,
		Conversation: conv,
		Store:        store,
		Context:      chatContext,
		Email:        email,
		Logger:       a.logger,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("interactive mode: %w", err)
	}

	if m, ok := final.(chatui.Model); ok {
		c := m.Conversation()
		fmt.Fprintf(os.Stderr, "Transcript %s: %d messages\n", c.GetShortID(), c.MessageCount())
		fmt.Fprintf(os.Stderr, "Continue with:\n  fincoach chat -i -s %s\n", c.GetShortID())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatMode, "mode", "m", "", "Advice mode: student or professional (default from config)")
	chatCmd.Flags().StringVar(&chatContext, "context", "", "Scenario context sent with the message")
	chatCmd.Flags().StringVarP(&chatScenario, "scenario", "p", "", "Quick-start scenario name or number (see 'fincoach scenarios')")
	chatCmd.Flags().StringArrayVar(&chatArgs, "arg", []string{}, "Key-value pairs for scenario placeholders (format: key:value)")
	chatCmd.Flags().BoolVarP(&chatInteractive, "interactive", "i", false, "Open the interactive conversation view")

	// Transcript flags
	chatCmd.Flags().StringVarP(&transcriptID, "transcript", "s", "", "Transcript ID (short or full UUID, or 'latest' for most recent transcript)")
	chatCmd.Flags().BoolVarP(&newTranscript, "new-transcript", "n", false, "Save the exchange to a new transcript")
	chatCmd.Flags().StringVar(&transcriptName, "name", "", "Name for the new transcript (optional)")
}
