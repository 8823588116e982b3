// Package render draws fincoach content for the terminal: formatted advice,
// conversation bubbles, error banners and calculator result panels.
package render

import "github.com/charmbracelet/lipgloss"

var (
	Indigo  = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	Rose    = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	Amber   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	Muted   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	Text    = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Indigo)

	labelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	valueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	numeralStyle = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)

	bulletStyle = lipgloss.NewStyle().
			Foreground(Indigo)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)

	coachLabelStyle = lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true)

	errorLabelStyle = lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(Rose).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rose).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Indigo).
			Padding(0, 1)

	goodStyle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(Muted).Italic(true)
)

// Hint renders muted helper text.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// Title renders a heading.
func Title(s string) string {
	return titleStyle.Render(s)
}
