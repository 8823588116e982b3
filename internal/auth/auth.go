// Package auth is the local session guard in front of the conversation view.
//
// The guard is a capability gate, not authentication: sign-in validates the
// shape of the email and the password length and then succeeds without any
// credential check. No credential is ever sent to the advice service.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/localstate"
)

// SessionKey is the durable key holding the serialized Session.
const SessionKey = "fc_user"

// MinPasswordLength is the shortest password accepted by SignIn.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Session is the signed-in user.
type Session struct {
	Email string `json:"email"`
}

// Store is the durable storage used by the guard.
type Store interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Guard holds the current session. It reads the store once, in Open, and
// writes it only on SignIn and SignOut.
type Guard struct {
	store Store

	mu      sync.RWMutex
	current *Session
}

// Open loads the persisted session, if any, and returns a guard caching it.
// A missing or unreadable session leaves the guard signed out.
func Open(ctx context.Context, store Store) (*Guard, error) {
	g := &Guard{store: store}

	var s Session
	err := store.GetJSON(ctx, SessionKey, &s)
	switch {
	case err == nil:
		if s.Email != "" {
			g.current = &s
		}
	case errors.Is(err, localstate.ErrNotFound), isCorrupt(err):
		// Signed out. A corrupt value is overwritten by the next SignIn.
	default:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return g, nil
}

func isCorrupt(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// ValidateCredentials checks the email shape and password length.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fincoach.Invalid("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return fincoach.Invalid("email", "please enter a valid email address")
	}
	if len(password) < MinPasswordLength {
		return fincoach.Invalid("password", "password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// SignIn validates the credentials and, if they are well formed, persists and
// caches a new session.
func (g *Guard) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	s := &Session{Email: strings.TrimSpace(email)}
	if err := g.store.SetJSON(ctx, SessionKey, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	g.mu.Lock()
	g.current = s
	g.mu.Unlock()

	cp := *s
	return &cp, nil
}

// SignOut clears the session. It always clears the cached session, even when
// the store cannot be updated.
func (g *Guard) SignOut(ctx context.Context) error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()

	if err := g.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the cached session. It never reads the store.
func (g *Guard) Current() (*Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return nil, false
	}
	cp := *g.current
	return &cp, true
}
