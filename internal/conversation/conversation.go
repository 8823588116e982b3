// Package conversation holds the ordered, append-only log of a chat with the
// advice service, and persists it locally as a transcript.
package conversation

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/fincoach/internal/fincoach"
)

// ErrNoPendingTurn is returned when a terminal entry is appended without an
// unanswered user entry to pair it with.
var ErrNoPendingTurn = errors.New("no unanswered user message")

// Conversation is an append-only message log. Appends are synchronous and each
// one raises the scroll intent.
type Conversation struct {
	ID        string            // UUID v4
	Name      string            // Optional name (empty by default)
	Mode      fincoach.UserMode // Mode used for the conversation's requests
	CreatedAt time.Time
	UpdatedAt time.Time

	mu         sync.Mutex
	messages   []fincoach.Message
	unanswered int
	scroll     chan struct{}
}

// New creates an empty conversation in the given mode
func New(mode fincoach.UserMode) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
		messages:  []fincoach.Message{},
		scroll:    make(chan struct{}, 1),
	}
}

// AppendUser records a user turn.
func (c *Conversation) AppendUser(text string) fincoach.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unanswered++
	return c.appendLocked(fincoach.Message{Role: fincoach.RoleUser, Content: text})
}

// AppendAssistant records the successful answer to the oldest unanswered
// user turn.
func (c *Conversation) AppendAssistant(text, provider string) (fincoach.Message, error) {
	return c.appendTerminal(fincoach.Message{Role: fincoach.RoleAssistant, Content: text, Provider: provider})
}

// AppendError records a failed answer. The entry stays in the transcript so
// the failed turn is never lost.
func (c *Conversation) AppendError(text string) (fincoach.Message, error) {
	return c.appendTerminal(fincoach.Message{Role: fincoach.RoleAssistant, Content: text, IsError: true})
}

func (c *Conversation) appendTerminal(msg fincoach.Message) (fincoach.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unanswered == 0 {
		return fincoach.Message{}, ErrNoPendingTurn
	}
	c.unanswered--
	return c.appendLocked(msg), nil
}

func (c *Conversation) appendLocked(msg fincoach.Message) fincoach.Message {
	msg.Timestamp = time.Now()
	c.messages = append(c.messages, msg)
	c.UpdatedAt = msg.Timestamp
	c.signalScroll()
	return msg
}

// signalScroll raises the scroll intent. Intents are not queued: several
// appends before the view reacts collapse into one.
func (c *Conversation) signalScroll() {
	if c.scroll == nil {
		c.scroll = make(chan struct{}, 1)
	}
	select {
	case c.scroll <- struct{}{}:
	default:
	}
}

// ScrollIntent receives a value when the view should scroll to the newest
// entry.
func (c *Conversation) ScrollIntent() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scroll == nil {
		c.scroll = make(chan struct{}, 1)
	}
	return c.scroll
}

// TakeScrollIntent reports and clears a pending scroll intent without
// blocking.
func (c *Conversation) TakeScrollIntent() bool {
	select {
	case <-c.ScrollIntent():
		return true
	default:
		return false
	}
}

// Messages returns a copy of the log in insertion order.
func (c *Conversation) Messages() []fincoach.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]fincoach.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns the number of messages in the conversation
func (c *Conversation) MessageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Unanswered returns the number of user turns still waiting for an answer.
func (c *Conversation) Unanswered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unanswered
}

// GetShortID returns the shortened conversation ID (first 8 characters)
func (c *Conversation) GetShortID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}

// GetDisplayName returns the name if set, otherwise the short ID.
func (c *Conversation) GetDisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.GetShortID()
}

type record struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Mode      fincoach.UserMode  `json:"mode"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Messages  []fincoach.Message `json:"messages"`
}

// MarshalJSON implements json.Marshaler.
func (c *Conversation) MarshalJSON() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return json.Marshal(record{
		ID:        c.ID,
		Name:      c.Name,
		Mode:      c.Mode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  c.messages,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ID = r.ID
	c.Name = r.Name
	c.Mode = r.Mode
	c.CreatedAt = r.CreatedAt
	c.UpdatedAt = r.UpdatedAt
	c.messages = r.Messages
	if c.messages == nil {
		c.messages = []fincoach.Message{}
	}
	c.unanswered = 0
	for _, m := range c.messages {
		if m.Role == fincoach.RoleUser {
			c.unanswered++
		} else if c.unanswered > 0 {
			c.unanswered--
		}
	}
	c.scroll = make(chan struct{}, 1)
	return nil
}
