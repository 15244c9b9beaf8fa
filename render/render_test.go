package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/schema"
)

func init() {
	color.NoColor = true
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestResultText(t *testing.T) {
	var buf bytes.Buffer
	res := schema.QueryResult{Response: "445", Success: true, ToolUsed: "calculator", Model: "mistral", Duration: 1500 * time.Millisecond}
	require.NoError(t, Result(&buf, FormatText, res, false))
	assert.Equal(t, "✅ VEXA: 445\n", buf.String())

	buf.Reset()
	require.NoError(t, Result(&buf, FormatText, res, true))
	assert.Equal(t, "✅ VEXA: 445\nTool: calculator\nModel: mistral, 1.5s\n", buf.String())

	buf.Reset()
	res.Usage = &schema.Usage{InputTokens: 120, OutputTokens: 30}
	require.NoError(t, Result(&buf, FormatText, res, true))
	assert.Equal(t, "✅ VEXA: 445\nTool: calculator\nModel: mistral, 1.5s, 150 tokens\n", buf.String())
	res.Usage = nil

	buf.Reset()
	failed := schema.QueryResult{Response: agents.FailureMessage, Error: "engine unavailable"}
	require.NoError(t, Result(&buf, FormatText, failed, false))
	assert.Equal(t, "❌ Error: "+agents.FailureMessage+"\nDetails: engine unavailable\n", buf.String())
}

func TestResultJSON(t *testing.T) {
	var buf bytes.Buffer
	res := schema.QueryResult{ID: "q1", Input: "2+2", Response: "4", Success: true, ToolUsed: "calculator", Duration: 20 * time.Millisecond}
	require.NoError(t, Result(&buf, FormatJSON, res, false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "4", got["response"])
	assert.Equal(t, "calculator", got["tool_used"])
	assert.Equal(t, true, got["success"])
	assert.EqualValues(t, 20, got["duration_ms"])
	assert.NotContains(t, got, "error")
}

func TestResultYAML(t *testing.T) {
	var buf bytes.Buffer
	res := schema.QueryResult{ID: "q1", Response: "hi", Success: false, Error: "engine unavailable", Duration: time.Second}
	require.NoError(t, Result(&buf, FormatYAML, res, false))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hi", got["response"])
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "engine unavailable", got["error"])
	assert.Equal(t, 1000, got["duration_ms"])
}

func TestHealthText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Health(&buf, FormatText, agents.Health{Status: agents.StatusHealthy, Model: "mistral", Engine: "openai", ToolsCount: 4}))
	assert.Equal(t, "✅ healthy: mistral (openai, 4 tools)\n", buf.String())

	buf.Reset()
	require.NoError(t, Health(&buf, FormatText, agents.Health{Status: agents.StatusUnhealthy, Model: "llama3", Engine: "openai", Error: "engine unavailable"}))
	assert.Contains(t, buf.String(), "❌ unhealthy: llama3")
	assert.Contains(t, buf.String(), "ollama pull llama3")
}

func TestInfoAndModels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Info(&buf, FormatText, agents.ModelInfo{Name: "VEXA", Version: "1.0.0", ModelName: "mistral", Engine: "openai", Tools: []string{"calculator", "datetime"}}))
	assert.Contains(t, buf.String(), "📊 Model: mistral\n")
	assert.Contains(t, buf.String(), "🛠️  Tools: calculator, datetime\n")

	buf.Reset()
	Models(&buf, []string{"mistral", "llama2"}, "mistral")
	assert.Equal(t, "📋 Available models:\n   • mistral (default)\n   • llama2\n", buf.String())
}

func TestWelcomeAndTools(t *testing.T) {
	var buf bytes.Buffer
	Welcome(&buf, "VEXA", "1.0.0")
	assert.Contains(t, buf.String(), "🤖 Welcome to VEXA v1.0.0!")
	assert.Contains(t, buf.String(), "'exit' to quit")

	buf.Reset()
	Tools(&buf, "Available tools:\n- calculator: does math")
	assert.Contains(t, buf.String(), "- calculator: does math")
	assert.Contains(t, buf.String(), "Calculate 15 * 23 + 45")
}
