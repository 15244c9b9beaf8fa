package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/bububa/vexa/schema"
)

// Kind says whether the engine answered or wants a tool
type Kind string

const (
	KindAnswer   Kind = "answer"
	KindToolCall Kind = "toolCall"
)

// ErrUnavailable the engine could not be reached
var ErrUnavailable = errors.New("engine unavailable")

// ErrEmptyResponse the engine replied without an answer or a tool call
var ErrEmptyResponse = errors.New("engine returned an empty response")

// ToolDescriptor is what the engine knows about a tool
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Observation is the tool round-trip folded into the final call
type Observation struct {
	CallID   string `json:"call_id,omitempty"`
	ToolName string `json:"tool_name"`
	Argument string `json:"argument"`
	// Output the tool output, or "Error: ..." when the tool failed
	Output string `json:"output"`
	// Thought the engine's text that came with the tool call, if any
	Thought string `json:"thought,omitempty"`
}

// Prompt is everything an engine sees for one call
type Prompt struct {
	System   string
	Question string
	Tools    []ToolDescriptor
	// Observation marks the final round: no further tool calls are expected
	Observation *Observation
}

// Final reports whether this is the call after a tool ran
func (p Prompt) Final() bool {
	return p.Observation != nil
}

// Decision is one engine reply
type Decision struct {
	Kind         Kind
	Text         string
	ToolName     string
	ToolArgument string
	CallID       string
	Model        string
	Usage        *schema.Usage
}

// IsToolCall reports whether the engine requested a tool
func (d Decision) IsToolCall() bool {
	return d.Kind == KindToolCall
}

// Answer returns an answer decision
func Answer(text string) Decision {
	return Decision{Kind: KindAnswer, Text: text}
}

// ToolCall returns a tool call decision
func ToolCall(name, argument string) Decision {
	return Decision{Kind: KindToolCall, ToolName: name, ToolArgument: argument}
}

// Engine is the external reasoning component
type Engine interface {
	Name() string
	Generate(ctx context.Context, prompt Prompt) (Decision, error)
}

// ModelLister is implemented by engines that can enumerate their models
type ModelLister interface {
	Models(ctx context.Context) ([]string, error)
}

// Unavailable wraps err so errors.Is(err, ErrUnavailable) holds
func Unavailable(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
