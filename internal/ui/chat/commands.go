package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/scenario"
)

const helpText = `Commands:
  /1 ... /4          Send a quick scenario
  /mode [name]       Show or switch mode (student, professional)
  /info, /i          Show conversation information
  /clear, /c         Clear notices and redraw
  /help, /h          Show this help message
  /exit, /quit, /q   Exit (also Esc, Ctrl+C, Ctrl+D)`

// userModes lists the modes accepted by /mode.
var userModes = []fincoach.UserMode{fincoach.ModeStudent, fincoach.ModeProfessional}

// command handles a slash command.
func (m Model) command(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	name := strings.ToLower(fields[0])

	if n, err := strconv.Atoi(strings.TrimPrefix(name, "/")); err == nil {
		s, ok := scenario.Builtin(n)
		if !ok {
			m.notice = fmt.Sprintf("No scenario %d (choose 1-%d)", n, len(scenario.Builtins()))
			return m, nil
		}
		return m.submit(s.Input)
	}

	switch name {
	case "/help", "/h":
		m.notice = helpText

	case "/info", "/i":
		m.notice = fmt.Sprintf("ID: %s  Name: %s  Mode: %s  Messages: %d  Created: %s",
			m.conv.ID,
			orDash(m.conv.Name),
			m.conv.Mode,
			m.conv.MessageCount(),
			m.conv.CreatedAt.Format("2006-01-02 15:04:05"))

	case "/mode":
		if len(fields) < 2 {
			m.notice = fmt.Sprintf("Mode: %s (available: %s, %s)", m.conv.Mode, userModes[0], userModes[1])
			break
		}
		mode, err := fincoach.ParseUserMode(fields[1])
		if err != nil {
			m.notice = err.Error()
			break
		}
		m.conv.Mode = mode
		m.notice = fmt.Sprintf("Mode set to %s", mode)

	case "/clear", "/c":
		m.notice = ""
		m.refresh()
		return m, tea.ClearScreen

	case "/exit", "/quit", "/q":
		return m.close()

	default:
		m.notice = fmt.Sprintf("Unknown command: %s (type '/help' for available commands)", name)
	}
	return m, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
