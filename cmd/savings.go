package cmd

import (
	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/spf13/cobra"
)

var (
	savingsInput = advisor.DefaultSavings()
	savingsLast  bool
)

// savingsCmd represents the savings command
var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Project progress toward a savings goal",
	Long: `Send a savings goal to the service and show the progress so far, the months
left to reach it and a 12 month projection.

The last successful projection is kept and stays visible when a later request
fails; --last shows it without a request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		calc := calculation[advisor.SavingsInput, advisor.SavingsProjection]{
			name: "savings",
			call: a.client.ProjectSavings,
			draw: render.Savings,
		}
		return calc.run(cmd.Context(), a, savingsInput, savingsLast)
	},
}

func init() {
	rootCmd.AddCommand(savingsCmd)

	f := savingsCmd.Flags()
	f.Float64Var(&savingsInput.TargetAmount, "target", savingsInput.TargetAmount, "Target amount")
	f.Float64Var(&savingsInput.CurrentAmount, "current", savingsInput.CurrentAmount, "Amount saved so far")
	f.Float64Var(&savingsInput.MonthlyContribution, "monthly", savingsInput.MonthlyContribution, "Monthly contribution")
	f.BoolVar(&savingsLast, "last", false, "Show the last successful projection without a request")
}
