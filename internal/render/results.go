package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/mutation"
)

// Budget renders a budget analysis.
func Budget(a advisor.BudgetAnalysis) string {
	rows := []Row{
		{"Total expenses", Money(a.TotalExpenses)},
		{"Remaining", Money(a.Remaining)},
	}

	categories := make([]string, 0, len(a.Breakdown))
	for c := range a.Breakdown {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		rows = append(rows, Row{"  " + c, Money(a.Breakdown[c])})
	}

	for _, bucket := range advisor.RuleBuckets {
		t, ok := a.Rule503020[bucket]
		if !ok {
			continue
		}
		// Savings should reach its target; Needs and Wants should stay under it.
		over := t.Actual > t.Target
		if bucket == "Savings" {
			over = t.Actual < t.Target
		}
		status := goodStyle.Render("on target")
		if over {
			status = badStyle.Render("off target")
		}
		rows = append(rows, Row{
			Label: "50/30/20 " + bucket,
			Value: fmt.Sprintf("%s of %s  %s", Money(t.Actual), Money(t.Target), status),
		})
	}
	return Panel("Budget analysis", rows)
}

// Savings renders a savings projection.
func Savings(p advisor.SavingsProjection) string {
	rows := []Row{
		{"Progress", Percent(p.ProgressPct)},
		{"Remaining", Money(p.Remaining)},
		{"Months to goal", fmt.Sprintf("%g", p.MonthsToGoal)},
	}
	for i, v := range p.Projection {
		rows = append(rows, Row{fmt.Sprintf("  Month %d", i+1), Money(v)})
	}
	return Panel("Savings projection", rows)
}

// Investment renders an investment projection.
func Investment(p advisor.InvestProjection) string {
	return Panel("Investment projection", []Row{
		{"Future value", Money(p.TotalFutureValue)},
		{"Total invested", Money(p.TotalInvested)},
		{"Total gains", Money(p.TotalGains)},
	})
}

// Fraud renders a fraud verdict. The awareness message is rendered as
// markdown when a renderer is given.
func Fraud(r advisor.FraudResult, md *glamour.TermRenderer) string {
	verdict := badStyle.Render("⚠ Potential fraud detected")
	if r.Clean() {
		verdict = goodStyle.Render("✓ No fraud detected")
	}

	status := "Failed"
	if r.Success {
		status = "Success"
	}

	var b strings.Builder
	b.WriteString(Panel("Analysis results", []Row{
		{"Verdict", verdict},
		{"Detected", r.DetectedContent},
		{"Provider", r.Provider},
		{"Model", r.Model},
		{"Analysis type", r.AnalysisType},
		{"Status", status},
	}))
	b.WriteString("\n")
	b.WriteString(Title("Awareness message"))
	b.WriteString("\n")
	b.WriteString(Markdown(md, r.AwarenessMessage))
	return b.String()
}

// NewMarkdown creates a markdown renderer wrapped to width. It returns nil
// when no renderer can be built; Markdown then falls back to plain text.
func NewMarkdown(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Markdown renders s with md, or returns s unchanged.
func Markdown(md *glamour.TermRenderer, s string) string {
	if md == nil {
		return s
	}
	out, err := md.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

// View renders a result panel: the last good result, if any, with the latest
// error as a banner above it.
func View[T any](p mutation.Panel[T], draw func(T) string) string {
	var parts []string
	if p.Banner != "" {
		parts = append(parts, Banner(p.Banner))
	}
	if p.Result != nil {
		parts = append(parts, draw(*p.Result))
	}
	if p.Pending {
		parts = append(parts, Hint("working..."))
	}
	return strings.Join(parts, "\n")
}
