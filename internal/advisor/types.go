package advisor

import "github.com/longkey1/fincoach/internal/fincoach"

// Action names the UI context a request originates from.
type Action string

const (
	ActionChat        Action = "chat"
	ActionFraud       Action = "fraud"
	ActionBudget      Action = "budget"
	ActionSavings     Action = "savings"
	ActionInvestment  Action = "investment"
	ActionHealthCheck Action = "health"
)

// Envelope pairs a request payload with the action that produced it. It lives
// only for the duration of one call.
type Envelope[Req any] struct {
	Action  Action
	Payload Req
}

// Wrap builds an Envelope.
func Wrap[Req any](action Action, payload Req) Envelope[Req] {
	return Envelope[Req]{Action: action, Payload: payload}
}

// ChatRequest is one conversational turn.
type ChatRequest struct {
	UserInput       string            `json:"user_input"`
	ScenarioContext string            `json:"scenario_context,omitempty"`
	UserMode        fincoach.UserMode `json:"user_mode,omitempty"`
}

// ChatResponse is the advice returned for a turn.
type ChatResponse struct {
	Response     string `json:"response"`
	Provider     string `json:"provider"`
	UsedFallback bool   `json:"used_fallback"`
}

// FraudRequest asks the service to analyze suspicious content.
type FraudRequest struct {
	Content      string                `json:"content"`
	AnalysisType fincoach.AnalysisType `json:"analysis_type"`
}

// FraudResult is the verdict of a fraud analysis.
type FraudResult struct {
	DetectedContent  string `json:"detected_content"`
	AwarenessMessage string `json:"awareness_message"`
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	Success          bool   `json:"success"`
	AnalysisType     string `json:"analysis_type,omitempty"`
}

// Clean reports whether the service found no scam in the content.
func (r FraudResult) Clean() bool {
	switch r.DetectedContent {
	case "None", "No scam detected.":
		return true
	}
	return false
}

// BudgetInput is a monthly budget.
type BudgetInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	Rent           float64 `json:"rent"`
	Utilities      float64 `json:"utilities"`
	Insurance      float64 `json:"insurance"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Entertainment  float64 `json:"entertainment"`
	Other          float64 `json:"other"`
}

// DefaultBudget is the form's initial budget.
func DefaultBudget() BudgetInput {
	return BudgetInput{
		MonthlyIncome:  3000,
		Rent:           1000,
		Utilities:      150,
		Insurance:      200,
		Food:           400,
		Transportation: 300,
		Entertainment:  200,
		Other:          150,
	}
}

// RuleTarget is one bucket of the 50/30/20 rule.
type RuleTarget struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

// BudgetAnalysis is the service's analysis of a budget.
type BudgetAnalysis struct {
	TotalExpenses float64               `json:"total_expenses"`
	Remaining     float64               `json:"remaining"`
	Breakdown     map[string]float64    `json:"breakdown"`
	Rule503020    map[string]RuleTarget `json:"rule_50_30_20"`
}

// RuleBuckets is the display order of the 50/30/20 buckets.
var RuleBuckets = []string{"Needs", "Wants", "Savings"}

// SavingsInput is a savings goal.
type SavingsInput struct {
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
}

// DefaultSavings is the form's initial savings goal.
func DefaultSavings() SavingsInput {
	return SavingsInput{TargetAmount: 5000, CurrentAmount: 500, MonthlyContribution: 200}
}

// SavingsProjection is the projected progress toward a savings goal.
type SavingsProjection struct {
	ProgressPct  float64   `json:"progress_pct"`
	Remaining    float64   `json:"remaining"`
	MonthsToGoal float64   `json:"months_to_goal"`
	Projection   []float64 `json:"projection_12mo"`
}

// InvestInput is a recurring investment plan.
type InvestInput struct {
	InitialInvestment float64 `json:"initial_investment"`
	MonthlyInvestment float64 `json:"monthly_investment"`
	AnnualReturnPct   float64 `json:"annual_return_pct"`
	Years             float64 `json:"years"`
}

// DefaultInvest is the form's initial investment plan.
func DefaultInvest() InvestInput {
	return InvestInput{InitialInvestment: 1000, MonthlyInvestment: 300, AnnualReturnPct: 7, Years: 20}
}

// InvestProjection is the future value of an investment plan.
type InvestProjection struct {
	TotalFutureValue float64 `json:"total_future_value"`
	TotalInvested    float64 `json:"total_invested"`
	TotalGains       float64 `json:"total_gains"`
}

// Health is the service's health report.
type Health struct {
	Status string `json:"status"`
}

// OK reports whether the service declared itself healthy.
func (h Health) OK() bool {
	return h.Status == "ok"
}
