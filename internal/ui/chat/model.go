// Package chat is the interactive conversation view.
//
// The view runs on bubbletea's single event loop. A submission appends the
// user entry, then issues the request as a tea.Cmd; the completion comes
// back as a message carrying the submission's sequence number and is folded
// into the tracker and the conversation. Once the view is closed, late
// completions are dropped without touching the conversation.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/longkey1/fincoach/internal/advisor"
	"github.com/longkey1/fincoach/internal/conversation"
	"github.com/longkey1/fincoach/internal/mutation"
	"github.com/longkey1/fincoach/internal/render"
	"github.com/longkey1/fincoach/internal/scenario"
)

// Sender sends one conversational turn.
type Sender interface {
	Chat(ctx context.Context, req advisor.ChatRequest) (*advisor.ChatResponse, error)
}

// Saver persists a conversation.
type Saver interface {
	Save(c *conversation.Conversation) error
}

// Options configures a Model.
type Options struct {
	Client       Sender
	Conversation *conversation.Conversation
	Store        Saver  // optional
	Context      string // scenario context sent with every turn
	Email        string // signed-in user, shown in the header
	Logger       *slog.Logger
}

// responseMsg is the completion of one submission.
type responseMsg struct {
	seq  uint64
	resp *advisor.ChatResponse
	err  error
}

// Model is the bubbletea model of the conversation view.
type Model struct {
	client  Sender
	conv    *conversation.Conversation
	store   Saver
	context string
	email   string
	logger  *slog.Logger

	tracker *mutation.Tracker[advisor.ChatResponse]

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	notice string
	width  int
	height int
	ready  bool
	closed bool
}

// New creates the view over an existing conversation.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Prompt = "You> "
	input.Placeholder = "Ask about budgeting, saving, investing, debt... (/help for commands)"
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(render.Indigo)

	return Model{
		client:   opts.Client,
		conv:     opts.Conversation,
		store:    opts.Store,
		context:  opts.Context,
		email:    opts.Email,
		logger:   logger,
		tracker:  mutation.New[advisor.ChatResponse]("chat"),
		input:    input,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

// Conversation returns the conversation shown by the view.
func (m Model) Conversation() *conversation.Conversation {
	return m.conv
}

// State returns the chat tracker's current state.
func (m Model) State() mutation.State[advisor.ChatResponse] {
	return m.tracker.State()
}

// Closed reports whether the view has been torn down.
func (m Model) Closed() bool {
	return m.closed
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case responseMsg:
		return m.resolve(msg)

	case spinner.TickMsg:
		if !m.tracker.IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m.close()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			return m.enter()
		}
		// Input is disabled while a turn is pending.
		if m.tracker.IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) enter() (tea.Model, tea.Cmd) {
	if m.tracker.IsPending() {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	if strings.HasPrefix(text, "/") {
		return m.command(text)
	}
	return m.submit(text)
}

// submit appends the user entry and issues the request.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	req := advisor.ChatRequest{UserInput: text, ScenarioContext: m.context, UserMode: m.conv.Mode}
	if err := req.Validate(); err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.conv.AppendUser(text)
	seq := m.tracker.Begin()
	m.notice = ""
	m.input.Blur()
	m.refresh()

	m.logger.Debug("chat turn submitted", "conversation", m.conv.GetShortID(), "seq", seq)
	return m, tea.Batch(send(m.client, seq, req), m.spinner.Tick)
}

func send(client Sender, seq uint64, req advisor.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), req)
		return responseMsg{seq: seq, resp: resp, err: err}
	}
}

// resolve folds a completion into the tracker and the conversation.
func (m Model) resolve(msg responseMsg) (tea.Model, tea.Cmd) {
	if m.closed {
		m.logger.Debug("dropping completion after close", "seq", msg.seq)
		return m, nil
	}

	var data advisor.ChatResponse
	if msg.resp != nil {
		data = *msg.resp
	}
	if !m.tracker.Resolve(msg.seq, data, msg.err) {
		m.logger.Debug("stale chat completion", "seq", msg.seq)
	}

	var err error
	if msg.err != nil {
		_, err = m.conv.AppendError(msg.err.Error())
	} else {
		_, err = m.conv.AppendAssistant(data.Response, data.Provider)
	}
	if err != nil {
		m.logger.Warn("unpaired chat completion", "seq", msg.seq, "error", err)
	}

	if m.store != nil {
		if err := m.store.Save(m.conv); err != nil {
			m.notice = fmt.Sprintf("Warning: failed to save transcript: %v", err)
		}
	}

	m.input.Focus()
	m.refresh()
	return m, textinput.Blink
}

func (m Model) close() (tea.Model, tea.Cmd) {
	m.closed = true
	m.input.Blur()
	return m, tea.Quit
}

// layout sizes the viewport to what is left after the header, status line
// and input.
func (m *Model) layout() {
	const chrome = 4
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 3)
	m.input.Width = max(m.width-len(m.input.Prompt)-1, 10)
	m.ready = true
}

// refresh re-renders the log and follows the scroll intent.
func (m *Model) refresh() {
	messages := m.conv.Messages()
	if len(messages) == 0 {
		m.viewport.SetContent(welcome())
	} else {
		m.viewport.SetContent(render.Transcript(messages, m.viewport.Width-2))
	}
	if m.conv.TakeScrollIntent() {
		m.viewport.GotoBottom()
	}
}

func welcome() string {
	lines := []string{render.Hint("Start with a quick scenario or ask your own question."), ""}
	for i, s := range scenario.Builtins() {
		lines = append(lines, fmt.Sprintf("  /%d  %s", i+1, s.Title))
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	header := render.Title("Your AI Finance Coach") + "  " +
		render.Hint(fmt.Sprintf("[%s] mode: %s", m.conv.GetShortID(), m.conv.Mode))
	if m.email != "" {
		header += "  " + render.Hint(m.email)
	}

	var status string
	switch {
	case m.tracker.IsPending():
		status = m.spinner.View() + " Thinking... the first reply can take a few minutes"
	case m.notice != "":
		status = m.notice
	}

	return strings.Join([]string{header, m.viewport.View(), status, m.input.View()}, "\n")
}
