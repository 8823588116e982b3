package scenario

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/fincoach/internal/fincoach"
)

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name)+".toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestBuiltins(t *testing.T) {
	titles := []string{
		"Build an emergency fund",
		"Pay off credit card debt",
		"Invest $200 per month",
		"Improve my credit score",
	}
	all := Builtins()
	require.Len(t, all, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, all[i].Title)
		assert.Equal(t, title, all[i].Input)

		s, ok := Builtin(i + 1)
		require.True(t, ok)
		assert.Equal(t, all[i], s)
	}

	_, ok := Builtin(0)
	assert.False(t, ok)
	_, ok = Builtin(5)
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		args    []string
		want    string
		wantErr bool
	}{
		{"built-in alone", "Build an emergency fund", "", nil, "Build an emergency fund", false},
		{"built-in with message", "Build an emergency fund", "I earn $3000", nil, "Build an emergency fund\n\nI earn $3000", false},
		{"input placeholder", "Question: {{input}}", "how much?", nil, "Question: how much?", false},
		{"named args", "Budget for {{guests}} guests in {{city}}", "", []string{"guests:80", `"city:New York"`}, "Budget for 80 guests in New York", false},
		{"escaped colon", "At {{time}}", "", []string{`time:10\:30`}, "At 10:30", false},
		{"bad arg", "x", "", []string{"novalue"}, "", true},
		{"reserved key", "x", "", []string{"input:y"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scenario{Input: tt.input}.Render(tt.message, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserMode(t *testing.T) {
	student := "student"
	bogus := "expert"
	assert.Equal(t, fincoach.ModeProfessional, Scenario{}.UserMode(fincoach.ModeProfessional))
	assert.Equal(t, fincoach.ModeStudent, Scenario{Mode: &student}.UserMode(fincoach.ModeProfessional))
	assert.Equal(t, fincoach.ModeProfessional, Scenario{Mode: &bogus}.UserMode(fincoach.ModeProfessional))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wedding", `
title = "Plan a wedding budget"
input = "Help me budget a wedding for {{guests}} guests"
context = "Saving for next year."
mode = "student"
`)
	writeScenario(t, dir, "empty", `title = "Nothing"`)
	writeScenario(t, dir, "badmode", "input = \"x\"\nmode = \"expert\"\n")
	writeScenario(t, dir, "broken", `input = `)

	s, err := Load(filepath.Join(dir, "wedding.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Plan a wedding budget", s.DisplayTitle())
	assert.Equal(t, "Saving for next year.", s.Context)
	assert.Equal(t, fincoach.ModeStudent, s.UserMode(fincoach.ModeProfessional))

	for _, name := range []string{"empty", "badmode", "broken", "missing"} {
		_, err := Load(filepath.Join(dir, name+".toml"))
		assert.Error(t, err, name)
	}
}

func TestCatalogFind(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeScenario(t, first, "retire/early", `input = "first"`)
	writeScenario(t, second, "retire/early", `input = "second"`)
	writeScenario(t, second, "emergency-fund", `input = "custom emergency fund"`)

	c := NewCatalog([]string{first, second}, slog.New(slog.DiscardHandler))

	s, err := c.Find("retire/early")
	require.NoError(t, err)
	assert.Equal(t, "second", s.Input, "later directories take precedence")
	assert.Equal(t, "retire/early", s.Name)

	s, err = c.Find("retire/early.toml")
	require.NoError(t, err)
	assert.Equal(t, "second", s.Input)

	s, err = c.Find("emergency-fund")
	require.NoError(t, err)
	assert.Equal(t, "custom emergency fund", s.Input, "files override built-ins")

	s, err = c.Find("2")
	require.NoError(t, err)
	assert.Equal(t, "Pay off credit card debt", s.Title)

	s, err = c.Find("credit-score")
	require.NoError(t, err)
	assert.Empty(t, s.Dir)

	_, err = c.Find("nope")
	assert.Error(t, err)
}

func TestCatalogList(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "zeta", `input = "z"`)
	writeScenario(t, dir, "alpha/one", `input = "a"`)
	writeScenario(t, dir, "invest-monthly", `input = "custom invest"`)
	writeScenario(t, dir, "broken", `input = `)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	c := NewCatalog([]string{filepath.Join(dir, "missing"), dir}, slog.New(slog.DiscardHandler))
	all, err := c.List()
	require.NoError(t, err)

	var names []string
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"emergency-fund", "credit-card-debt", "invest-monthly", "credit-score",
		"alpha/one", "zeta",
	}, names)
	assert.Equal(t, "custom invest", all[2].Input)
	assert.Equal(t, dir, all[2].Dir)
}
