package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonEmptyQuery ReasonCode = "empty_query"

	ReasonEngineUnavailable ReasonCode = "engine_unavailable"
	ReasonEngineResponse    ReasonCode = "engine_response"

	ReasonToolExecution ReasonCode = "tool_execution"
	ReasonToolNotFound  ReasonCode = "tool_not_found"
	ReasonToolPanic     ReasonCode = "tool_panic"
)
