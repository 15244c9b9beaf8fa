// Package config loads VEXA settings from defaults, an optional YAML file,
// VEXA_ environment variables and command line flags, in rising priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/components/systemprompt/simple"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine"
	oaiengine "github.com/bububa/vexa/engine/openai"
	"github.com/bububa/vexa/engine/react"
	"github.com/bububa/vexa/engine/rules"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/tools/toolset"
)

const (
	EnvPrefix = "VEXA"
	// FileName is looked up as vexa.yaml in the working directory and ~/.vexa
	FileName = "vexa"
)

const (
	EngineOpenAI = "openai"
	EngineReact  = "react"
	EngineRules  = "rules"
)

const (
	CounterTikToken = "tiktoken"
	CounterWords    = "words"
)

// ErrUnknownEngine the engine kind is not one of openai, react or rules
var ErrUnknownEngine = errors.New("unknown engine")

type Config struct {
	Agent     AgentConfig  `mapstructure:"agent"`
	Engine    EngineConfig `mapstructure:"engine"`
	Tools     ToolsConfig  `mapstructure:"tools"`
	Server    ServerConfig `mapstructure:"server"`
	LogLevel  string       `mapstructure:"log_level"`
	LogFormat string       `mapstructure:"log_format"`
	// File the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

type AgentConfig struct {
	Name              string   `mapstructure:"name"`
	Version           string   `mapstructure:"version"`
	Models            []string `mapstructure:"models"`
	ObservationBudget int      `mapstructure:"observation_budget"`
	// SystemPrompt replaces the built-in persona when set
	SystemPrompt string `mapstructure:"system_prompt"`
	// TokenCounter tiktoken or words; words needs no BPE download. Empty
	// picks words for the rules engine and tiktoken otherwise.
	TokenCounter string `mapstructure:"token_counter"`
}

type EngineConfig struct {
	// Kind openai, react or rules
	Kind        string        `mapstructure:"kind"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	TopP        float32       `mapstructure:"top_p"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ToolsConfig struct {
	Enabled         []string      `mapstructure:"enabled"`
	SearchBackend   string        `mapstructure:"search_backend"`
	SearxngURL      string        `mapstructure:"searxng_url"`
	SearchResults   int           `mapstructure:"search_results"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`
	SearchCacheSize int           `mapstructure:"search_cache_size"`
	SearchCacheTTL  time.Duration `mapstructure:"search_cache_ttl"`
	FileRoot        string        `mapstructure:"file_root"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// New returns a viper instance carrying the defaults and the environment
// binding. Flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("agent.name", agents.DefaultName)
	v.SetDefault("agent.version", agents.DefaultVersion)
	v.SetDefault("agent.models", agents.DefaultModels)
	v.SetDefault("agent.observation_budget", agents.DefaultObservationBudget)
	v.SetDefault("agent.system_prompt", "")
	v.SetDefault("engine.kind", EngineOpenAI)
	v.SetDefault("engine.base_url", oaiengine.DefaultBaseURL)
	v.SetDefault("engine.api_key", "ollama")
	v.SetDefault("engine.model", oaiengine.DefaultModel)
	v.SetDefault("engine.temperature", oaiengine.DefaultTemperature)
	v.SetDefault("engine.top_p", oaiengine.DefaultTopP)
	v.SetDefault("engine.max_tokens", oaiengine.DefaultMaxTokens)
	v.SetDefault("engine.timeout", oaiengine.DefaultTimeout)
	v.SetDefault("tools.enabled", toolset.DefaultNames())
	v.SetDefault("tools.search_backend", toolset.BackendDuckDuckGo)
	v.SetDefault("tools.searxng_url", "")
	v.SetDefault("tools.search_results", 5)
	v.SetDefault("tools.search_timeout", 30*time.Second)
	v.SetDefault("tools.search_cache_size", 128)
	v.SetDefault("tools.search_cache_ttl", 10*time.Minute)
	v.SetDefault("tools.file_root", "")
	v.SetDefault("tools.fetch_timeout", 30*time.Second)
	v.SetDefault("server.addr", ":7860")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logging.FormatText)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or vexa.yaml from the usual places when path is empty,
// and decodes the merged settings.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vexa"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be fixed up later
func (c Config) Validate() error {
	if !slices.Contains([]string{EngineOpenAI, EngineReact, EngineRules}, c.Engine.Kind) {
		return fmt.Errorf("%w: %s", ErrUnknownEngine, c.Engine.Kind)
	}
	if c.Agent.TokenCounter != "" && c.Agent.TokenCounter != CounterTikToken && c.Agent.TokenCounter != CounterWords {
		return fmt.Errorf("unknown token counter: %s", c.Agent.TokenCounter)
	}
	if c.Tools.SearchBackend == toolset.BackendSearxng && c.Tools.SearxngURL == "" {
		return errors.New("tools.searxng_url is required by the searxng backend")
	}
	for _, name := range c.Tools.Enabled {
		if !slices.Contains(toolset.AllNames(), name) {
			return fmt.Errorf("%w: %s", toolset.ErrUnknownTool, name)
		}
	}
	return nil
}

// ToolSettings converts the tools section for toolset.Build
func (c Config) ToolSettings() toolset.Settings {
	return toolset.Settings{
		Enabled:         c.Tools.Enabled,
		SearchBackend:   c.Tools.SearchBackend,
		SearxngURL:      c.Tools.SearxngURL,
		SearchResults:   c.Tools.SearchResults,
		SearchTimeout:   c.Tools.SearchTimeout,
		SearchCacheSize: c.Tools.SearchCacheSize,
		SearchCacheTTL:  c.Tools.SearchCacheTTL,
		FileRoot:        c.Tools.FileRoot,
		FetchTimeout:    c.Tools.FetchTimeout,
	}
}

// NewEngine builds the configured engine
func (c Config) NewEngine() (engine.Engine, error) {
	switch c.Engine.Kind {
	case EngineRules:
		return rules.New(), nil
	case EngineOpenAI, EngineReact:
		clt := oaiengine.New(
			oaiengine.WithBaseURL(c.Engine.BaseURL),
			oaiengine.WithAPIKey(c.Engine.APIKey),
			oaiengine.WithModel(c.Engine.Model),
			oaiengine.WithTemperature(c.Engine.Temperature),
			oaiengine.WithTopP(c.Engine.TopP),
			oaiengine.WithMaxTokens(c.Engine.MaxTokens),
			oaiengine.WithTimeout(c.Engine.Timeout),
		)
		if c.Engine.Kind == EngineReact {
			return react.New(clt), nil
		}
		return clt, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, c.Engine.Kind)
	}
}

// Model is the model name the agent reports before the engine names one
func (c Config) Model() string {
	if c.Engine.Kind == EngineRules {
		return rules.Model
	}
	return c.Engine.Model
}

// TokenCounter returns the counter for observation budgets, or nil for the
// agent's default tiktoken counter
func (c Config) TokenCounter() tokenizer.Counter {
	switch c.Agent.TokenCounter {
	case CounterWords:
		return tokenizer.WordsCounter{}
	case CounterTikToken:
		return nil
	}
	if c.Engine.Kind == EngineRules {
		return tokenizer.WordsCounter{}
	}
	return nil
}

// AgentOptions maps the agent section onto agent options
func (c Config) AgentOptions(logger *slog.Logger) []agents.Option {
	opts := []agents.Option{
		agents.WithName(c.Agent.Name),
		agents.WithVersion(c.Agent.Version),
		agents.WithModel(c.Model()),
		agents.WithAvailableModels(c.Agent.Models),
		agents.WithObservationBudget(c.Agent.ObservationBudget),
		agents.WithLogger(logging.Component(logger, "agent")),
	}
	if c.Engine.Kind == EngineRules {
		opts = append(opts, agents.WithAvailableModels(append([]string{rules.Model}, c.Agent.Models...)))
	}
	if counter := c.TokenCounter(); counter != nil {
		opts = append(opts, agents.WithTokenCounter(counter))
	}
	if c.Agent.SystemPrompt != "" {
		opts = append(opts, agents.WithSystemPromptGenerator(simple.New(c.Agent.SystemPrompt)))
	}
	return opts
}
