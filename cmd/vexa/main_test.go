package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine/rules"
	"github.com/bububa/vexa/tools/toolset"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("VEXA_AGENT_TOKEN_COUNTER", "words")
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestQueryOffline(t *testing.T) {
	out, err := run(t, "--engine", "rules", "query", "-q", "What is 15 * 23 + 100?", "--format", "json")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "calculator", res["tool_used"])
	assert.Contains(t, res["response"], "445")
	assert.Equal(t, rules.Model, res["model"])
}

func TestQueryArgsAndText(t *testing.T) {
	out, err := run(t, "--engine", "rules", "query", "calculate", "2+2")
	require.NoError(t, err)
	assert.Contains(t, out, "🤖 Processing: calculate 2+2")
	assert.Contains(t, out, "✅ VEXA: Using the calculator tool:\nResult: 4")
}

func TestQueryEngineDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := run(t, "--base-url", srv.URL+"/v1", "query", "-q", "hello")
	assert.ErrorIs(t, err, errQueryFailed)
	assert.Contains(t, out, "❌ Error: "+agents.FailureMessage)
	assert.Contains(t, out, "Details: engine unavailable")
}

func TestToolsCommand(t *testing.T) {
	out, err := run(t, "tools")
	require.NoError(t, err)
	for _, name := range toolset.DefaultNames() {
		assert.Contains(t, out, "- "+name+": ")
	}
	assert.Contains(t, out, "VEXA TOOLS INFORMATION")
}

func TestModelsCommand(t *testing.T) {
	out, err := run(t, "-m", "llama2", "models")
	require.NoError(t, err)
	assert.Contains(t, out, "   • llama2 (default)\n")
	assert.Contains(t, out, "   • mistral\n")
}

func TestHealthCommand(t *testing.T) {
	out, err := run(t, "--engine", "rules", "health", "--format", "json")
	require.NoError(t, err)
	var h agents.Health
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.True(t, h.Healthy())
	assert.Equal(t, "rules", h.Engine)
}

func TestUnknownEngine(t *testing.T) {
	_, err := run(t, "--engine", "gpt", "tools")
	assert.Error(t, err)
}

func TestSession(t *testing.T) {
	registry, err := toolset.Build(toolset.Settings{Enabled: []string{toolset.Calculator, toolset.DateTime}})
	require.NoError(t, err)
	agent := agents.New(registry, rules.New(), agents.WithModel(rules.Model), agents.WithTokenCounter(tokenizer.WordsCounter{}))
	var out bytes.Buffer
	s := &session{agent: agent, out: &out}
	ctx := context.Background()

	assert.True(t, s.handle(ctx, "   "))
	assert.Empty(t, out.String())

	assert.True(t, s.handle(ctx, "help"))
	assert.Contains(t, out.String(), "- calculator: ")
	out.Reset()

	assert.True(t, s.handle(ctx, "info"))
	assert.Contains(t, out.String(), "🛠️  Tools: calculator, datetime")
	out.Reset()

	assert.True(t, s.handle(ctx, "calculate 6 * 7"))
	assert.Contains(t, out.String(), "Result: 42")
	out.Reset()

	for _, word := range []string{"exit", "QUIT", "bye", "q"} {
		assert.False(t, s.handle(ctx, word), word)
	}
	assert.Contains(t, out.String(), "👋 Goodbye!")
}
