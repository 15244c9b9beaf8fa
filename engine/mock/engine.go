package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/bububa/vexa/engine"
)

// ErrScriptExhausted the engine was called more often than scripted
var ErrScriptExhausted = errors.New("mock engine: no more scripted steps")

// Step is one scripted reply
type Step struct {
	Decision engine.Decision
	Err      error
}

// Engine replays scripted decisions and records every prompt it saw
type Engine struct {
	mtx     sync.Mutex
	steps   []Step
	prompts []engine.Prompt
}

var _ engine.Engine = (*Engine)(nil)

func New(steps ...Step) *Engine {
	return &Engine{steps: steps}
}

// Answers scripts a direct answer
func Answers(text string) *Engine {
	return New(Step{Decision: engine.Answer(text)})
}

// CallsTool scripts one tool call followed by final
func CallsTool(name, argument, final string) *Engine {
	return New(
		Step{Decision: engine.ToolCall(name, argument)},
		Step{Decision: engine.Answer(final)},
	)
}

// Fails scripts an error on every call
func Fails(err error) *Engine {
	return New(Step{Err: err})
}

func (e *Engine) Name() string {
	return "mock"
}

// Generate returns the next step. A single error step repeats forever.
func (e *Engine) Generate(ctx context.Context, prompt engine.Prompt) (engine.Decision, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.prompts = append(e.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return engine.Decision{}, err
	}
	if len(e.steps) == 0 {
		return engine.Decision{}, ErrScriptExhausted
	}
	step := e.steps[0]
	if len(e.steps) > 1 || step.Err == nil {
		e.steps = e.steps[1:]
	}
	if step.Err != nil {
		return engine.Decision{}, step.Err
	}
	if step.Decision.Model == "" {
		step.Decision.Model = "mock"
	}
	return step.Decision, nil
}

// Calls returns the number of Generate calls
func (e *Engine) Calls() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return len(e.prompts)
}

// Prompts returns every prompt received, in order
func (e *Engine) Prompts() []engine.Prompt {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return append([]engine.Prompt(nil), e.prompts...)
}
