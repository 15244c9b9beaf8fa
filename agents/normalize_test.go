package agents

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/errorsx"
)

func TestNormalizeAnswer(t *testing.T) {
	cases := map[string]string{
		"":                          NoResponse,
		"   \n":                     NoResponse,
		"Final Answer:":             NoResponse,
		"Final Answer: 42":          "42",
		"  The answer is 42.\n":     "The answer is 42.",
		"The Final Answer: is here": "The Final Answer: is here",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeAnswer(in), in)
	}
}

func TestReasonOf(t *testing.T) {
	assert.Equal(t, errorsx.ReasonEngineUnavailable, ReasonOf(engine.ErrUnavailable))
	assert.Equal(t, errorsx.ReasonEngineResponse, ReasonOf(errors.New("x")))
	assert.Equal(t, errorsx.ReasonEmptyQuery, ReasonOf(errorsx.Wrap(ErrEmptyQuery, errorsx.ReasonEmptyQuery)))
}

func TestSameShapeForEveryPath(t *testing.T) {
	n := &normalizer{id: "id", input: "q", engine: "mock", model: "m"}
	ok := n.answer("fine")
	failed := n.failure(errors.New("bad"))
	for _, res := range []struct {
		id, input, engine, model string
	}{
		{ok.ID, ok.Input, ok.Engine, ok.Model},
		{failed.ID, failed.Input, failed.Engine, failed.Model},
	} {
		assert.Equal(t, "id", res.id)
		assert.Equal(t, "q", res.input)
		assert.Equal(t, "mock", res.engine)
		assert.Equal(t, "m", res.model)
	}
	assert.True(t, ok.Success)
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)
}
