package openai

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI compatible endpoint of a local Ollama
	DefaultBaseURL     = "http://localhost:11434/v1"
	DefaultModel       = "mistral"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 2048
	DefaultTimeout     = 120 * time.Second
)

type Option func(*Engine)

func WithBaseURL(baseURL string) Option {
	return func(e *Engine) {
		e.baseURL = baseURL
	}
}

// WithAPIKey sets the bearer token; Ollama ignores it
func WithAPIKey(key string) Option {
	return func(e *Engine) {
		e.apiKey = key
	}
}

func WithModel(model string) Option {
	return func(e *Engine) {
		e.model = model
	}
}

func WithTemperature(v float32) Option {
	return func(e *Engine) {
		e.temperature = v
	}
}

func WithTopP(v float32) Option {
	return func(e *Engine) {
		e.topP = v
	}
}

func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		e.maxTokens = n
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(e *Engine) {
		e.httpClient = clt
	}
}
