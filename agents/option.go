package agents

import (
	"context"
	"log/slog"

	"github.com/bububa/vexa/components/systemprompt"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/schema"
)

type Option func(a *Agent)

func WithName(name string) Option {
	return func(a *Agent) {
		a.name = name
	}
}

func WithVersion(version string) Option {
	return func(a *Agent) {
		a.version = version
	}
}

// WithModel sets the model reported when the engine does not name one
func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

// WithAvailableModels sets the models the agent is known to work with
func WithAvailableModels(models []string) Option {
	return func(a *Agent) {
		a.availableModels = models
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(a *Agent) {
		a.systemPromptGenerator = g
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = l
	}
}

// WithTokenCounter sets the counter used to cap observations
func WithTokenCounter(c tokenizer.Counter) Option {
	return func(a *Agent) {
		a.counter = c
	}
}

// WithObservationBudget caps tool output at n tokens; zero disables the cap
func WithObservationBudget(n int) Option {
	return func(a *Agent) {
		a.observationBudget = n
	}
}

func WithStartHook(fn func(context.Context, *Agent, string)) Option {
	return func(a *Agent) {
		a.startHook = fn
	}
}

func WithEndHook(fn func(context.Context, *Agent, schema.QueryResult)) Option {
	return func(a *Agent) {
		a.endHook = fn
	}
}

func WithToolHook(fn func(context.Context, *Agent, ToolCall)) Option {
	return func(a *Agent) {
		a.toolHook = fn
	}
}
