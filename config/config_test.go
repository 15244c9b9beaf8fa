package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine/mock"
	oaiengine "github.com/bububa/vexa/engine/openai"
	"github.com/bububa/vexa/engine/react"
	"github.com/bububa/vexa/engine/rules"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/tools/toolset"
)

// chdir moves into an empty directory so no stray vexa.yaml is picked up
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "VEXA", cfg.Agent.Name)
	assert.Equal(t, "1.0.0", cfg.Agent.Version)
	assert.Equal(t, agents.DefaultModels, cfg.Agent.Models)
	assert.Equal(t, EngineOpenAI, cfg.Engine.Kind)
	assert.Equal(t, "mistral", cfg.Engine.Model)
	assert.Equal(t, oaiengine.DefaultBaseURL, cfg.Engine.BaseURL)
	assert.InDelta(t, 0.7, cfg.Engine.Temperature, 1e-6)
	assert.InDelta(t, 0.9, cfg.Engine.TopP, 1e-6)
	assert.Equal(t, 2048, cfg.Engine.MaxTokens)
	assert.Equal(t, toolset.DefaultNames(), cfg.Tools.Enabled)
	assert.Equal(t, 5, cfg.Tools.SearchResults)
	assert.Equal(t, 30*time.Second, cfg.Tools.SearchTimeout)
	assert.Equal(t, ":7860", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  kind: react
  model: llama3
  timeout: 45s
tools:
  enabled: [calculator, weather]
  search_results: 3
server:
  addr: 127.0.0.1:8080
log_level: debug
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, EngineReact, cfg.Engine.Kind)
	assert.Equal(t, "llama3", cfg.Engine.Model)
	assert.Equal(t, 45*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, []string{"calculator", "weather"}, cfg.Tools.Enabled)
	assert.Equal(t, 3, cfg.Tools.SearchResults)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, 2048, cfg.Engine.MaxTokens)
}

func TestLoadFindsFileInWorkingDirectory(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vexa.yaml"), []byte("engine:\n  model: codellama\n"), 0o644))
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "codellama", cfg.Engine.Model)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdir(t)
	_, err := Load(New(), filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "vexa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  model: llama2\n"), 0o644))
	t.Setenv("VEXA_ENGINE_MODEL", "neural-chat")
	t.Setenv("VEXA_ENGINE_KIND", "rules")
	t.Setenv("VEXA_TOOLS_SEARCH_TIMEOUT", "5s")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "neural-chat", cfg.Engine.Model)
	assert.Equal(t, EngineRules, cfg.Engine.Kind)
	assert.Equal(t, 5*time.Second, cfg.Tools.SearchTimeout)
}

func TestValidate(t *testing.T) {
	chdir(t)
	t.Setenv("VEXA_ENGINE_KIND", "gpt")
	_, err := Load(New(), "")
	assert.ErrorIs(t, err, ErrUnknownEngine)

	cfg := Config{Engine: EngineConfig{Kind: EngineOpenAI}, Tools: ToolsConfig{Enabled: []string{"teleport"}}}
	assert.ErrorIs(t, cfg.Validate(), toolset.ErrUnknownTool)

	cfg = Config{Engine: EngineConfig{Kind: EngineOpenAI}, Agent: AgentConfig{TokenCounter: "bytes"}}
	assert.Error(t, cfg.Validate())

	cfg = Config{Engine: EngineConfig{Kind: EngineOpenAI}, Tools: ToolsConfig{SearchBackend: toolset.BackendSearxng}}
	assert.Error(t, cfg.Validate())
	cfg.Tools.SearxngURL = "http://localhost:8888"
	assert.NoError(t, cfg.Validate())
}

func TestNewEngine(t *testing.T) {
	cfg := Config{Engine: EngineConfig{Kind: EngineOpenAI, Model: "llama3", BaseURL: "http://example.com/v1"}}
	eng, err := cfg.NewEngine()
	require.NoError(t, err)
	clt, ok := eng.(*oaiengine.Engine)
	require.True(t, ok)
	assert.Equal(t, "llama3", clt.Model())

	cfg.Engine.Kind = EngineReact
	eng, err = cfg.NewEngine()
	require.NoError(t, err)
	assert.IsType(t, &react.Engine{}, eng)

	cfg.Engine.Kind = EngineRules
	eng, err = cfg.NewEngine()
	require.NoError(t, err)
	assert.IsType(t, &rules.Engine{}, eng)
	assert.Equal(t, rules.Model, cfg.Model())

	cfg.Engine.Kind = "nope"
	_, err = cfg.NewEngine()
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestToolSettingsAndAgentOptions(t *testing.T) {
	chdir(t)
	t.Setenv("VEXA_AGENT_SYSTEM_PROMPT", "You are terse.")
	t.Setenv("VEXA_TOOLS_ENABLED", "calculator,datetime")
	t.Setenv("VEXA_AGENT_TOKEN_COUNTER", "words")
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	s := cfg.ToolSettings()
	assert.Equal(t, []string{"calculator", "datetime"}, s.Enabled)
	registry, err := toolset.Build(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"calculator", "datetime"}, registry.Names())

	eng := mock.Answers("ok")
	agent := agents.New(registry, eng, cfg.AgentOptions(logging.Discard())...)
	assert.Equal(t, "mistral", agent.Model())
	assert.Contains(t, agent.SystemPrompt(), "You are terse.")
	assert.Contains(t, agent.SystemPrompt(), "- calculator:")
}

func TestTokenCounter(t *testing.T) {
	offline := Config{Engine: EngineConfig{Kind: EngineRules}}
	assert.Equal(t, tokenizer.WordsCounter{}, offline.TokenCounter())

	online := Config{Engine: EngineConfig{Kind: EngineOpenAI}}
	assert.Nil(t, online.TokenCounter())

	online.Agent.TokenCounter = CounterWords
	assert.Equal(t, tokenizer.WordsCounter{}, online.TokenCounter())

	offline.Agent.TokenCounter = CounterTikToken
	assert.Nil(t, offline.TokenCounter())
}
