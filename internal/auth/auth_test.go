package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/localstate"
)

func openStore(t *testing.T) *localstate.Store {
	t.Helper()
	s, err := localstate.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"valid", "a@b.com", "123456", ""},
		{"empty email", "", "123456", "email"},
		{"blank email", "   ", "123456", "email"},
		{"malformed email", "bad-email", "123456", "email"},
		{"missing tld", "a@b", "123456", "email"},
		{"space in email", "a b@c.com", "123456", "email"},
		{"short password", "a@b.com", "12345", "password"},
		{"empty password", "a@b.com", "", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.email, tt.password)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *fincoach.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGuardSignInSignOut(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	g, err := Open(ctx, store)
	require.NoError(t, err)
	_, ok := g.Current()
	assert.False(t, ok)

	var verr *fincoach.ValidationError
	_, err = g.SignIn(ctx, "bad-email", "123456")
	assert.ErrorAs(t, err, &verr)
	_, err = g.SignIn(ctx, "a@b.com", "12345")
	assert.ErrorAs(t, err, &verr)
	_, ok = g.Current()
	assert.False(t, ok, "failed sign-in must not create a session")

	s, err := g.SignIn(ctx, "a@b.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", s.Email)

	cur, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, &Session{Email: "a@b.com"}, cur)

	require.NoError(t, g.SignOut(ctx))
	_, ok = g.Current()
	assert.False(t, ok)
	require.NoError(t, g.SignOut(ctx), "sign-out is unconditional")
}

func TestGuardLoadsPersistedSessionOnce(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	first, err := Open(ctx, store)
	require.NoError(t, err)
	_, err = first.SignIn(ctx, "a@b.com", "123456")
	require.NoError(t, err)

	second, err := Open(ctx, store)
	require.NoError(t, err)
	cur, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", cur.Email)

	// Later writes by another guard are not observed: the cache is read once.
	require.NoError(t, first.SignOut(ctx))
	_, ok = second.Current()
	assert.True(t, ok)
}

func TestGuardCorruptSessionIsSignedOut(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.Set(ctx, SessionKey, []byte("{not json")))

	g, err := Open(ctx, store)
	require.NoError(t, err)
	_, ok := g.Current()
	assert.False(t, ok)
}

type failingStore struct{ err error }

func (f failingStore) GetJSON(context.Context, string, any) error { return f.err }
func (f failingStore) SetJSON(context.Context, string, any) error { return f.err }
func (f failingStore) Delete(context.Context, string) error       { return f.err }

func TestGuardStoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	_, err := Open(ctx, failingStore{err: boom})
	assert.ErrorIs(t, err, boom)

	g := &Guard{store: failingStore{err: boom}, current: &Session{Email: "a@b.com"}}
	_, err = g.SignIn(ctx, "c@d.com", "123456")
	assert.ErrorIs(t, err, boom)
	cur, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", cur.Email, "failed save keeps the previous session")

	assert.ErrorIs(t, g.SignOut(ctx), boom)
	_, ok = g.Current()
	assert.False(t, ok, "sign-out clears the cache even when the store fails")
}

func TestGate(t *testing.T) {
	assert.Equal(t, ViewLanding, Gate(nil))
	assert.Equal(t, ViewConversation, Gate(&Session{Email: "a@b.com"}))
	assert.Equal(t, "landing", ViewLanding.String())
	assert.Equal(t, "conversation", ViewConversation.String())
}
