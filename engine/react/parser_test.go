package react

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bububa/vexa/engine"
)

func TestParseToolCall(t *testing.T) {
	d := Parse(" I need to calculate this.\nAction: calculator\nAction Input: 15 * 23 + 100")
	assert.Equal(t, engine.KindToolCall, d.Kind)
	assert.Equal(t, "calculator", d.ToolName)
	assert.Equal(t, "15 * 23 + 100", d.ToolArgument)
	assert.Equal(t, "I need to calculate this.", d.Text)
}

func TestParseToolCallVariants(t *testing.T) {
	cases := []struct {
		text, name, input string
	}{
		{"Action: `datetime`\nAction Input: \"date\"", "datetime", "date"},
		{"Thought: search\nAction: [web_search]\nAction Input: golang 1.22 release\nObservation: made up", "web_search", "golang 1.22 release"},
		{"Action 1: file_ops\nAction 1 Input: list", "file_ops", "list"},
		{"Action: calculator\nAction Input: 2+2\nFinal Answer: 4", "calculator", "2+2"},
	}
	for _, c := range cases {
		d := Parse(c.text)
		assert.Equal(t, engine.KindToolCall, d.Kind, c.text)
		assert.Equal(t, c.name, d.ToolName, c.text)
		assert.Equal(t, c.input, d.ToolArgument, c.text)
	}
}

func TestParseFinalAnswer(t *testing.T) {
	d := Parse(" I now know the final answer\nFinal Answer: The result is 445. ")
	assert.Equal(t, engine.KindAnswer, d.Kind)
	assert.Equal(t, "The result is 445.", d.Text)

	// an answer that mentions actions afterwards stays an answer
	d = Parse("Final Answer: use Action: x\nAction Input: y")
	assert.Equal(t, engine.KindAnswer, d.Kind)
	assert.Equal(t, "use Action: x\nAction Input: y", d.Text)
}

func TestParseUnstructured(t *testing.T) {
	d := Parse("Thought: Hello! How can I help you today?")
	assert.Equal(t, engine.KindAnswer, d.Kind)
	assert.Equal(t, "Hello! How can I help you today?", d.Text)

	d = Parse("")
	assert.Equal(t, engine.KindAnswer, d.Kind)
	assert.Empty(t, d.Text)
}
