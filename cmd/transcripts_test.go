package cmd

import (
	"testing"
	"time"

	"github.com/longkey1/fincoach/internal/conversation"
	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2025-03-14", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{input: "2025-03", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2025", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "14/03/2025", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestCreatedBefore(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	old := conversation.New(fincoach.DefaultMode)
	old.CreatedAt = cutoff.Add(-time.Hour)
	recent := conversation.New(fincoach.DefaultMode)
	recent.CreatedAt = cutoff.Add(time.Hour)
	exact := conversation.New(fincoach.DefaultMode)
	exact.CreatedAt = cutoff

	got := createdBefore([]*conversation.Conversation{old, recent, exact}, cutoff)
	require.Len(t, got, 1)
	assert.Equal(t, old.ID, got[0].ID)

	assert.Empty(t, createdBefore(nil, cutoff))
}
