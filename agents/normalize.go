package agents

import (
	"errors"
	"strings"

	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/errorsx"
	"github.com/bububa/vexa/schema"
)

const (
	// NoResponse replaces an empty answer
	NoResponse = "No response generated"
	// FailureMessage is the user-facing response of a failed query
	FailureMessage = "I encountered an error while processing your request. Please try rephrasing your question or check if Ollama is running with the correct model."
	// EmptyQueryMessage is the response to a blank question
	EmptyQueryMessage = "Please enter a question."
)

// normalizer is the one place QueryResults are built, so every path and
// every caller sees the same shape.
type normalizer struct {
	id       string
	input    string
	engine   string
	model    string
	toolUsed string
	usage    *schema.Usage
}

func (a *Agent) newNormalizer(id, input string) *normalizer {
	return &normalizer{
		id:     id,
		input:  input,
		engine: a.engine.Name(),
		model:  a.model,
	}
}

// observe folds the model name and token usage of a decision
func (n *normalizer) observe(d engine.Decision) {
	if d.Model != "" {
		n.model = d.Model
	}
	if d.Usage != nil {
		if n.usage == nil {
			n.usage = new(schema.Usage)
		}
		n.usage.Merge(d.Usage)
	}
}

func (n *normalizer) base() schema.QueryResult {
	return schema.QueryResult{
		ID:       n.id,
		Input:    n.input,
		ToolUsed: n.toolUsed,
		Model:    n.model,
		Engine:   n.engine,
		Usage:    n.usage,
	}
}

func (n *normalizer) answer(text string) schema.QueryResult {
	ret := n.base()
	ret.Success = true
	ret.Response = NormalizeAnswer(text)
	return ret
}

func (n *normalizer) failure(err error) schema.QueryResult {
	ret := n.base()
	ret.Success = false
	ret.Reason = string(ReasonOf(err))
	switch {
	case errors.Is(err, ErrEmptyQuery):
		ret.Response = EmptyQueryMessage
		ret.Error = ErrEmptyQuery.Error()
	case errors.Is(err, engine.ErrUnavailable):
		ret.Response = FailureMessage
		ret.Error = engine.ErrUnavailable.Error()
	default:
		ret.Response = FailureMessage
		ret.Error = err.Error()
		if ret.Error == "" {
			ret.Error = string(errorsx.ReasonEngineResponse)
		}
	}
	return ret
}

// ReasonOf picks the reason code reported for a failed query
func ReasonOf(err error) errorsx.ReasonCode {
	if errors.Is(err, engine.ErrUnavailable) {
		return errorsx.ReasonOr(err, errorsx.ReasonEngineUnavailable)
	}
	return errorsx.ReasonOr(err, errorsx.ReasonEngineResponse)
}

// NormalizeAnswer trims the answer, drops a leading "Final Answer:" label
// and substitutes NoResponse for an empty answer.
func NormalizeAnswer(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "Final Answer:"); ok {
		text = strings.TrimSpace(rest)
	}
	if text == "" {
		return NoResponse
	}
	return text
}
