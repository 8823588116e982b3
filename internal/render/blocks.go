package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/longkey1/fincoach/internal/format"
)

// Advice renders AI text as formatted blocks, one per line, wrapped to width.
// A width of zero disables wrapping.
func Advice(text string, width int) string {
	var b strings.Builder
	for block := range format.Blocks(text) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Block(block, width))
	}
	return b.String()
}

// Block renders one content block. Numbered items keep the numeral of the
// source text.
func Block(block format.Block, width int) string {
	var marker string
	switch block.Kind {
	case format.KindNumbered:
		marker = numeralStyle.Render(block.Index + ".")
	case format.KindBullet:
		marker = bulletStyle.Render("•")
	default:
		return wrap(block.Text, width)
	}

	indent := lipgloss.Width(marker) + 1
	body := wrap(block.Text, width-indent)
	return lipgloss.JoinHorizontal(lipgloss.Top, marker+" ", body)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
