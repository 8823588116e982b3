package cmd

import (
	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/spf13/cobra"
)

var (
	investInput = advisor.DefaultInvest()
	investLast  bool
)

// investCmd represents the invest command
var investCmd = &cobra.Command{
	Use:     "invest",
	Aliases: []string{"investment"},
	Short:   "Project the growth of a recurring investment",
	Long: `Send an investment plan to the service and show its future value, the total
invested and the gains.

The last successful projection is kept and stays visible when a later request
fails; --last shows it without a request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		calc := calculation[advisor.InvestInput, advisor.InvestProjection]{
			name: "invest",
			call: a.client.CalculateInvestment,
			draw: render.Investment,
		}
		return calc.run(cmd.Context(), a, investInput, investLast)
	},
}

func init() {
	rootCmd.AddCommand(investCmd)

	f := investCmd.Flags()
	f.Float64Var(&investInput.InitialInvestment, "initial", investInput.InitialInvestment, "Initial investment")
	f.Float64Var(&investInput.MonthlyInvestment, "monthly", investInput.MonthlyInvestment, "Monthly investment")
	f.Float64Var(&investInput.AnnualReturnPct, "return", investInput.AnnualReturnPct, "Expected annual return in percent")
	f.Float64Var(&investInput.Years, "years", investInput.Years, "Years invested")
	f.BoolVar(&investLast, "last", false, "Show the last successful projection without a request")
}
