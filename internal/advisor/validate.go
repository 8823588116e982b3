package advisor

import (
	"math"
	"strings"

	"github.com/longkey1/fincoach/internal/fincoach"
)

// Validate checks a chat request.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.UserInput) == "" {
		return fincoach.Invalid("user_input", "message is empty")
	}
	if r.UserMode != "" {
		if _, err := fincoach.ParseUserMode(string(r.UserMode)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a fraud request.
func (r FraudRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fincoach.Invalid("content", "content to analyze is empty")
	}
	_, err := fincoach.ParseAnalysisType(string(r.AnalysisType))
	return err
}

// Validate checks a budget.
func (b BudgetInput) Validate() error {
	return amounts(
		field{"monthly_income", b.MonthlyIncome},
		field{"rent", b.Rent},
		field{"utilities", b.Utilities},
		field{"insurance", b.Insurance},
		field{"food", b.Food},
		field{"transportation", b.Transportation},
		field{"entertainment", b.Entertainment},
		field{"other", b.Other},
	)
}

// Validate checks a savings goal.
func (s SavingsInput) Validate() error {
	return amounts(
		field{"target_amount", s.TargetAmount},
		field{"current_amount", s.CurrentAmount},
		field{"monthly_contribution", s.MonthlyContribution},
	)
}

// Validate checks an investment plan. The annual return may be negative.
func (i InvestInput) Validate() error {
	if err := amounts(
		field{"initial_investment", i.InitialInvestment},
		field{"monthly_investment", i.MonthlyInvestment},
	); err != nil {
		return err
	}
	if !finite(i.AnnualReturnPct) {
		return fincoach.Invalid("annual_return_pct", "must be a number")
	}
	if !finite(i.Years) || i.Years <= 0 {
		return fincoach.Invalid("years", "must be greater than zero")
	}
	return nil
}

type field struct {
	name  string
	value float64
}

func amounts(fields ...field) error {
	for _, f := range fields {
		if !finite(f.value) {
			return fincoach.Invalid(f.name, "must be a number")
		}
		if f.value < 0 {
			return fincoach.Invalid(f.name, "must not be negative")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
