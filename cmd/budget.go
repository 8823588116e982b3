package cmd

import (
	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/spf13/cobra"
)

var (
	budgetInput = advisor.DefaultBudget()
	budgetLast  bool
)

// budgetCmd represents the budget command
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Analyze a monthly budget with the 50/30/20 rule",
	Long: `Send a monthly budget to the service and show the total expenses, what
remains, the per-category breakdown and how it compares to the 50/30/20 rule.

Unset amounts keep their defaults. The last successful analysis is kept and
stays visible when a later request fails; --last shows it without a request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		calc := calculation[advisor.BudgetInput, advisor.BudgetAnalysis]{
			name: "budget",
			call: a.client.AnalyzeBudget,
			draw: render.Budget,
		}
		return calc.run(cmd.Context(), a, budgetInput, budgetLast)
	},
}

func init() {
	rootCmd.AddCommand(budgetCmd)

	f := budgetCmd.Flags()
	f.Float64Var(&budgetInput.MonthlyIncome, "income", budgetInput.MonthlyIncome, "Monthly income")
	f.Float64Var(&budgetInput.Rent, "rent", budgetInput.Rent, "Rent")
	f.Float64Var(&budgetInput.Utilities, "utilities", budgetInput.Utilities, "Utilities")
	f.Float64Var(&budgetInput.Insurance, "insurance", budgetInput.Insurance, "Insurance")
	f.Float64Var(&budgetInput.Food, "food", budgetInput.Food, "Food")
	f.Float64Var(&budgetInput.Transportation, "transportation", budgetInput.Transportation, "Transportation")
	f.Float64Var(&budgetInput.Entertainment, "entertainment", budgetInput.Entertainment, "Entertainment")
	f.Float64Var(&budgetInput.Other, "other", budgetInput.Other, "Other expenses")
	f.BoolVar(&budgetLast, "last", false, "Show the last successful analysis without a request")
}
