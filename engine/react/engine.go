package react

import (
	"context"
	"fmt"
	"strings"

	"github.com/bububa/vexa/components"
	reactprompt "github.com/bububa/vexa/components/systemprompt/react"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/schema"
)

// stopSequences end the completion before the model invents an observation
var stopSequences = []string{"\nObservation:"}

// Completer runs a plain chat completion
type Completer interface {
	Complete(ctx context.Context, msgs []components.Message, stop []string) (*components.LLMResponse, error)
}

// Engine drives tool use through the ReAct text protocol, for models
// without native tool calling.
type Engine struct {
	completer Completer
}

var _ engine.Engine = (*Engine)(nil)

func New(completer Completer) *Engine {
	return &Engine{completer: completer}
}

func (e *Engine) Name() string {
	return "react"
}

// Models lists models when the completer can
func (e *Engine) Models(ctx context.Context) ([]string, error) {
	if lister, ok := e.completer.(engine.ModelLister); ok {
		return lister.Models(ctx)
	}
	return nil, nil
}

func (e *Engine) Generate(ctx context.Context, prompt engine.Prompt) (engine.Decision, error) {
	msgs := []components.Message{
		*components.NewMessage(components.SystemRole, schema.String(SystemPrompt(prompt))),
		*components.NewMessage(components.UserRole, schema.String(Scratchpad(prompt))),
	}
	resp, err := e.completer.Complete(ctx, msgs, stopSequences)
	if err != nil {
		return engine.Decision{}, err
	}
	d := Parse(resp.Content)
	d.Model = resp.Model
	d.Usage = resp.Usage
	return d, nil
}

// SystemPrompt renders the ReAct instructions. Tools are listed only before
// the observation round.
func SystemPrompt(prompt engine.Prompt) string {
	var opts []reactprompt.Option
	if prompt.System != "" {
		opts = append(opts, reactprompt.WithPersona(prompt.System))
	}
	if !prompt.Final() {
		tools := make([]reactprompt.Tool, 0, len(prompt.Tools))
		for _, t := range prompt.Tools {
			tools = append(tools, reactprompt.Tool{Name: t.Name, Description: t.Description})
		}
		opts = append(opts, reactprompt.WithTools(tools...))
	}
	return reactprompt.New(opts...).Generate()
}

// Scratchpad renders the question and, in the final round, the tool step
func Scratchpad(prompt engine.Prompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\nThought:", prompt.Question)
	if obs := prompt.Observation; obs != nil {
		if obs.Thought != "" {
			fmt.Fprintf(&b, " %s", obs.Thought)
		}
		fmt.Fprintf(&b, "\nAction: %s\nAction Input: %s\nObservation: %s\nThought:", obs.ToolName, obs.Argument, obs.Output)
	}
	return b.String()
}
