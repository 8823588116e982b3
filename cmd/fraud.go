package cmd

import (
	"context"
	"fmt"

	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/mutation"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/spf13/cobra"
)

var fraudType string

// fraudCmd represents the fraud command
var fraudCmd = &cobra.Command{
	Use:   "fraud [content]",
	Short: "Check suspicious content for fraud",
	Long: `Send emails, messages, investment offers or any suspicious content to the
service for fraud analysis.

If no content is provided as an argument, it reads from stdin.
--type general runs scam detection; --type financial runs the financial fraud analysis.

Examples:
  fincoach fraud "You won a prize! Send your bank details to claim it."
  fincoach fraud --type financial < offer.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		analysis, err := fincoach.ParseAnalysisType(fraudType)
		if err != nil {
			return err
		}

		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		content, err := readInput(args)
		if err != nil {
			return err
		}
		req := advisor.FraudRequest{Content: content, AnalysisType: analysis}
		if err := req.Validate(); err != nil {
			return err
		}

		tracker := mutation.New[advisor.FraudResult]("fraud")
		done := make(chan bool)
		go showSpinner(done, "Analyzing...")
		_, _, err = tracker.Run(cmd.Context(), func(ctx context.Context) (advisor.FraudResult, error) {
			r, err := a.client.Analyze(ctx, req)
			if err != nil {
				return advisor.FraudResult{}, err
			}
			return *r, nil
		})
		done <- true
		close(done)

		var panel mutation.Panel[advisor.FraudResult]
		panel.Apply(tracker.State())
		md := render.NewMarkdown(80)
		fmt.Println(render.View(panel, func(r advisor.FraudResult) string {
			return render.Fraud(r, md)
		}))
		if err != nil {
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fraudCmd)
	fraudCmd.Flags().StringVarP(&fraudType, "type", "t", string(fincoach.AnalysisGeneral), "Analysis type: general or financial")
}
