package components

import (
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/vexa/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// ToolCall a function call requested by the assistant
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message represents a message in the prompt sent to the engine
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	// turnID is Unique identifier for the turn this message belongs to.
	turnID string
	// toolCallID links a tool message to the call it answers
	toolCallID string
	toolCalls  []ToolCall
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolMessage returns the observation message answering callID
func NewToolMessage(callID string, content schema.Schema) *Message {
	return &Message{
		role:       ToolRole,
		content:    content,
		toolCallID: callID,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// SetToolCalls attaches the tool calls an assistant message made
func (m *Message) SetToolCalls(calls ...ToolCall) *Message {
	m.toolCalls = calls
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// StringifiedContent returns the content as text
func (m Message) StringifiedContent() string {
	return schema.Stringify(m.content)
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToolCallID returns the id of the call a tool message answers
func (m Message) ToolCallID() string {
	return m.toolCallID
}

// ToolCalls returns the calls made by an assistant message
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.StringifiedContent()
	dist.ToolCallID = m.toolCallID
	if len(m.toolCalls) == 0 {
		return
	}
	dist.ToolCalls = make([]openai.ToolCall, 0, len(m.toolCalls))
	for _, call := range m.toolCalls {
		dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
}

// ToOpenAIMessages converts a prompt
func ToOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	ret := make([]openai.ChatCompletionMessage, len(msgs))
	for idx, msg := range msgs {
		msg.ToOpenAI(&ret[idx])
	}
	return ret
}
