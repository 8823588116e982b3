package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Row is one labeled value of a panel.
type Row struct {
	Label string
	Value string
}

// Banner renders a standalone error banner.
func Banner(msg string) string {
	return bannerStyle.Render("✗ " + msg)
}

// Panel renders a titled box of aligned rows.
func Panel(title string, rows []Row) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}

	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		label := labelStyle.Render(r.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label)))
		lines = append(lines, label+"  "+valueStyle.Render(r.Value))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Money formats an amount as dollars with thousands separators.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
