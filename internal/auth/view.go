package auth

// View is the view shown at the conversation route.
type View int

const (
	// ViewLanding is the unauthenticated landing view.
	ViewLanding View = iota
	// ViewConversation is the conversation view.
	ViewConversation
)

func (v View) String() string {
	switch v {
	case ViewConversation:
		return "conversation"
	default:
		return "landing"
	}
}

// Gate picks the view for the conversation route. Absence of a session
// renders the landing view instead of failing.
func Gate(s *Session) View {
	if s != nil {
		return ViewConversation
	}
	return ViewLanding
}
