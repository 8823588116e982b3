package render

import (
	"strings"

	"github.com/longkey1/fincoach/internal/fincoach"
)

// Message renders one conversation entry with its speaker label.
func Message(m fincoach.Message, width int) string {
	var label, body string
	switch {
	case m.Role == fincoach.RoleUser:
		label = userLabelStyle.Render("You")
		body = wrap(m.Content, width)
	case m.IsError:
		label = errorLabelStyle.Render("Error")
		body = errorLabelStyle.UnsetBold().Render(wrap(m.Content, width))
	default:
		label = coachLabelStyle.Render("Coach")
		if m.Provider != "" {
			label += " " + labelStyle.Render("("+m.Provider+")")
		}
		body = Advice(m.Content, width)
	}
	return label + "\n" + body
}

// Transcript renders every message separated by blank lines.
func Transcript(messages []fincoach.Message, width int) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, Message(m, width))
	}
	return strings.Join(parts, "\n\n")
}
