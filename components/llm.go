package components

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/vexa/schema"
)

// LLMResponse provider chat response
type LLMResponse struct {
	ID           string        `json:"id,omitempty"`
	Role         MessageRole   `json:"role,omitempty"`
	Model        string        `json:"model,omitempty"`
	Usage        *schema.Usage `json:"usage,omitempty"`
	Timestamp    int64         `json:"ts,omitempty"`
	FinishReason string        `json:"finish_reason,omitempty"`
	Content      string        `json:"content,omitempty"`
	ToolCalls    []ToolCall    `json:"tool_calls,omitempty"`
}

// FromOpenAI convert response from an openai compatible server
func (r *LLMResponse) FromOpenAI(v *openai.ChatCompletionResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = v.Model
	r.Timestamp = v.Created
	r.Usage = &schema.Usage{
		InputTokens:  int64(v.Usage.PromptTokens),
		OutputTokens: int64(v.Usage.CompletionTokens),
	}
	if len(v.Choices) == 0 {
		return
	}
	choice := v.Choices[0]
	r.FinishReason = string(choice.FinishReason)
	r.Content = choice.Message.Content
	for _, call := range choice.Message.ToolCalls {
		r.ToolCalls = append(r.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
}
