package schema

import (
	"encoding/json"
	"time"
)

// QueryResult is the single response shape returned to every caller (CLI,
// web and library). It is built once per query by the agent and never
// modified afterwards; callers receive a copy.
type QueryResult struct {
	// ID unique identifier of the query
	ID string `json:"id" yaml:"id"`
	// Input the question as received
	Input string `json:"input" yaml:"input"`
	// Response natural-language answer, or a user-facing failure message
	Response string `json:"response" yaml:"response"`
	// ToolUsed name of the tool invoked while answering, empty when none
	ToolUsed string `json:"tool_used,omitempty" yaml:"tool_used,omitempty"`
	// Success false when the query could not be answered
	Success bool `json:"success" yaml:"success"`
	// Error failure detail, empty on success
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Reason machine-readable failure code
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Model engine model that produced the answer
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// Engine name of the engine implementation
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`
	// Usage token usage summed over every engine call of the query
	Usage *Usage `json:"usage,omitempty" yaml:"usage,omitempty"`
	// Duration wall time spent answering
	Duration time.Duration `json:"-" yaml:"-"`
}

// HasTool reports whether a tool was invoked
func (r QueryResult) HasTool() bool {
	return r.ToolUsed != ""
}

// String implements Schema
func (r QueryResult) String() string {
	return r.Response
}

// MarshalJSON writes the duration in milliseconds
func (r QueryResult) MarshalJSON() ([]byte, error) {
	type alias QueryResult
	return json.Marshal(struct {
		alias
		Duration int64 `json:"duration_ms"`
	}{
		alias:    alias(r),
		Duration: r.Duration.Milliseconds(),
	})
}

// MarshalYAML writes the duration in milliseconds
func (r QueryResult) MarshalYAML() (any, error) {
	type alias QueryResult
	return struct {
		alias    `yaml:",inline"`
		Duration int64 `yaml:"duration_ms"`
	}{
		alias:    alias(r),
		Duration: r.Duration.Milliseconds(),
	}, nil
}
