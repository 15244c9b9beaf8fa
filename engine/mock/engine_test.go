package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/vexa/engine"
)

func TestScript(t *testing.T) {
	e := CallsTool("calculator", "1+1", "two")
	d, err := e.Generate(context.Background(), engine.Prompt{Question: "q"})
	require.NoError(t, err)
	assert.True(t, d.IsToolCall())
	assert.Equal(t, "mock", d.Model)

	d, err = e.Generate(context.Background(), engine.Prompt{Question: "q", Observation: &engine.Observation{}})
	require.NoError(t, err)
	assert.Equal(t, "two", d.Text)

	_, err = e.Generate(context.Background(), engine.Prompt{})
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Equal(t, 3, e.Calls())
	assert.True(t, e.Prompts()[1].Final())
}

func TestFailsRepeats(t *testing.T) {
	boom := errors.New("boom")
	e := Fails(boom)
	for i := 0; i < 3; i++ {
		_, err := e.Generate(context.Background(), engine.Prompt{})
		assert.ErrorIs(t, err, boom)
	}
}
