package conversation

import (
	"encoding/json"
	"testing"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOrder(t *testing.T) {
	c := New(fincoach.ModeProfessional)

	c.AppendUser("Build an emergency fund")
	_, err := c.AppendAssistant("1. Save 3 months.", "granite")
	require.NoError(t, err)
	c.AppendUser("And then?")
	_, err = c.AppendError("server is not reachable")
	require.NoError(t, err)

	msgs := c.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, fincoach.RoleUser, msgs[0].Role)
	assert.Equal(t, "Build an emergency fund", msgs[0].Content)
	assert.Equal(t, fincoach.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "granite", msgs[1].Provider)
	assert.False(t, msgs[1].IsError)
	assert.Equal(t, fincoach.RoleUser, msgs[2].Role)
	assert.True(t, msgs[3].IsError)
	assert.Equal(t, "server is not reachable", msgs[3].Content)
	for _, m := range msgs {
		assert.False(t, m.Timestamp.IsZero())
	}
}

func TestTerminalEntriesNeverExceedUserEntries(t *testing.T) {
	c := New(fincoach.ModeStudent)

	_, err := c.AppendAssistant("unprompted", "granite")
	assert.ErrorIs(t, err, ErrNoPendingTurn)
	_, err = c.AppendError("unprompted")
	assert.ErrorIs(t, err, ErrNoPendingTurn)
	assert.Equal(t, 0, c.MessageCount())

	c.AppendUser("one")
	c.AppendUser("two")
	assert.Equal(t, 2, c.Unanswered())

	_, err = c.AppendAssistant("a", "")
	require.NoError(t, err)
	_, err = c.AppendError("b")
	require.NoError(t, err)
	_, err = c.AppendAssistant("c", "")
	assert.ErrorIs(t, err, ErrNoPendingTurn, "each user entry gains at most one terminal entry")

	users, terminals := 0, 0
	for _, m := range c.Messages() {
		if m.Role == fincoach.RoleUser {
			users++
		} else {
			terminals++
		}
	}
	assert.LessOrEqual(t, terminals, users)
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := New(fincoach.ModeProfessional)
	c.AppendUser("hello")

	msgs := c.Messages()
	msgs[0].Content = "tampered"
	assert.Equal(t, "hello", c.Messages()[0].Content)
}

func TestScrollIntentCoalesces(t *testing.T) {
	c := New(fincoach.ModeProfessional)
	assert.False(t, c.TakeScrollIntent())

	c.AppendUser("one")
	assert.True(t, c.TakeScrollIntent())
	assert.False(t, c.TakeScrollIntent())

	c.AppendUser("two")
	c.AppendAssistant("answer", "")
	assert.True(t, c.TakeScrollIntent())
	assert.False(t, c.TakeScrollIntent(), "intents are signaled, not queued")

	select {
	case <-c.ScrollIntent():
		t.Fatal("unexpected pending intent")
	default:
	}
}

func TestJSONRoundTripRestoresPairing(t *testing.T) {
	c := New(fincoach.ModeStudent)
	c.Name = "fund"
	c.AppendUser("q1")
	c.AppendAssistant("a1", "granite")
	c.AppendUser("q2")

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got Conversation
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "fund", got.Name)
	assert.Equal(t, fincoach.ModeStudent, got.Mode)
	assert.Equal(t, 3, got.MessageCount())
	assert.Equal(t, 1, got.Unanswered())

	_, err = got.AppendError("server error, retry later")
	require.NoError(t, err)
	assert.True(t, got.TakeScrollIntent())
}

func TestDisplayName(t *testing.T) {
	c := New(fincoach.ModeProfessional)
	assert.Equal(t, c.ID[:8], c.GetShortID())
	assert.Equal(t, c.GetShortID(), c.GetDisplayName())

	c.Name = "debt plan"
	assert.Equal(t, "debt plan", c.GetDisplayName())
}
