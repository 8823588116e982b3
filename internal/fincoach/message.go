package fincoach

import "time"

// Role identifies who authored a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry of a conversation. Messages are never edited
// after creation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Provider  string    `json:"provider,omitempty"` // provider attribution reported by the service
	IsError   bool      `json:"is_error"`
	Timestamp time.Time `json:"timestamp"`
}

// IsTerminal reports whether the message answers a user turn.
func (m Message) IsTerminal() bool {
	return m.Role == RoleAssistant
}
