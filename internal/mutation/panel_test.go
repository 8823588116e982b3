package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelKeepsLastGoodResult(t *testing.T) {
	tr := New[int]("savings")
	var p Panel[int]
	assert.False(t, p.HasResult())

	seq := tr.Begin()
	p.Apply(tr.State())
	assert.True(t, p.Pending)

	tr.Succeed(seq, 10)
	p.Apply(tr.State())
	require.True(t, p.HasResult())
	assert.Equal(t, 10, *p.Result)
	assert.Empty(t, p.Banner)
	assert.False(t, p.Pending)

	seq = tr.Begin()
	tr.Fail(seq, errors.New("server error, retry later"))
	p.Apply(tr.State())
	assert.Equal(t, 10, *p.Result, "error must not replace the last good result")
	assert.Equal(t, "server error, retry later", p.Banner)

	seq = tr.Begin()
	tr.Succeed(seq, 20)
	p.Apply(tr.State())
	assert.Equal(t, 20, *p.Result)
	assert.Empty(t, p.Banner, "a new success clears the banner")
}

func TestPanelErrorWithoutPriorResult(t *testing.T) {
	var p Panel[string]
	p.Apply(State[string]{Status: StatusError, Message: "endpoint not found"})

	assert.False(t, p.HasResult())
	assert.Equal(t, "endpoint not found", p.Banner)
}
