package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/bububa/vexa/components"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/schema"
)

// inputParam is the single string parameter every tool takes
const inputParam = "input"

// Engine talks to an OpenAI compatible chat completions API with native tool calling
type Engine struct {
	client      *openai.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	topP        float32
	maxTokens   int
	timeout     time.Duration
	httpClient  *http.Client
}

var (
	_ engine.Engine      = (*Engine)(nil)
	_ engine.ModelLister = (*Engine)(nil)
)

func New(opts ...Option) *Engine {
	ret := &Engine{
		temperature: DefaultTemperature,
		topP:        DefaultTopP,
		maxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.model == "" {
		ret.model = DefaultModel
	}
	if ret.apiKey == "" {
		ret.apiKey = "ollama"
	}
	if ret.timeout <= 0 {
		ret.timeout = DefaultTimeout
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	cfg := openai.DefaultConfig(ret.apiKey)
	cfg.BaseURL = strings.TrimRight(ret.baseURL, "/")
	cfg.HTTPClient = ret.httpClient
	ret.client = openai.NewClientWithConfig(cfg)
	return ret
}

func (e *Engine) Name() string {
	return "openai"
}

// Model returns the configured model name
func (e *Engine) Model() string {
	return e.model
}

// BaseURL returns the API endpoint
func (e *Engine) BaseURL() string {
	return e.baseURL
}

// Generate asks the model for an answer or a tool call. Tools are only
// offered before the observation round.
func (e *Engine) Generate(ctx context.Context, prompt engine.Prompt) (engine.Decision, error) {
	msgs := make([]components.Message, 0, 4)
	if prompt.System != "" {
		msgs = append(msgs, *components.NewMessage(components.SystemRole, schema.String(prompt.System)))
	}
	msgs = append(msgs, *components.NewMessage(components.UserRole, schema.String(prompt.Question)))
	var tools []openai.Tool
	if obs := prompt.Observation; obs != nil {
		callID := obs.CallID
		if callID == "" {
			callID = "call_" + components.NewTurnID()
		}
		args, _ := json.Marshal(map[string]string{inputParam: obs.Argument})
		msgs = append(msgs,
			*components.NewMessage(components.AssistantRole, schema.String(obs.Thought)).SetToolCalls(components.ToolCall{
				ID:        callID,
				Name:      obs.ToolName,
				Arguments: string(args),
			}),
			*components.NewToolMessage(callID, schema.String(obs.Output)),
		)
	} else {
		tools = toOpenAITools(prompt.Tools)
	}
	resp, err := e.chat(ctx, msgs, tools, nil)
	if err != nil {
		return engine.Decision{}, err
	}
	decision := engine.Decision{
		Kind:  engine.KindAnswer,
		Text:  resp.Content,
		Model: resp.Model,
		Usage: resp.Usage,
	}
	if len(resp.ToolCalls) > 0 {
		call := resp.ToolCalls[0]
		decision.Kind = engine.KindToolCall
		decision.ToolName = call.Name
		decision.ToolArgument = parseArgument(call.Arguments)
		decision.CallID = call.ID
	}
	return decision, nil
}

// Complete runs a plain chat completion, stopping at any of stop
func (e *Engine) Complete(ctx context.Context, msgs []components.Message, stop []string) (*components.LLMResponse, error) {
	return e.chat(ctx, msgs, nil, stop)
}

// Models lists the models the server has available
func (e *Engine) Models(ctx context.Context) ([]string, error) {
	list, err := e.client.ListModels(ctx)
	if err != nil {
		return nil, classify(err)
	}
	ret := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ret = append(ret, m.ID)
	}
	return ret, nil
}

func (e *Engine) chat(ctx context.Context, msgs []components.Message, tools []openai.Tool, stop []string) (*components.LLMResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Messages:    components.ToOpenAIMessages(msgs),
		Temperature: e.temperature,
		TopP:        e.topP,
		MaxTokens:   e.maxTokens,
		Tools:       tools,
		Stop:        stop,
	}
	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, engine.ErrEmptyResponse
	}
	ret := new(components.LLMResponse)
	ret.FromOpenAI(&resp)
	if ret.Model == "" {
		ret.Model = e.model
	}
	return ret, nil
}

func toOpenAITools(descriptors []engine.ToolDescriptor) []openai.Tool {
	if len(descriptors) == 0 {
		return nil
	}
	ret := make([]openai.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		ret = append(ret, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						inputParam: {
							Type:        jsonschema.String,
							Description: "The input passed to the tool",
						},
					},
					Required: []string{inputParam},
				},
			},
		})
	}
	return ret
}

// parseArgument extracts the tool input from function call arguments.
// Models do not always follow the schema, so the first string field or the
// raw arguments are accepted as well.
func parseArgument(arguments string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		var s string
		if json.Unmarshal([]byte(arguments), &s) == nil {
			return s
		}
		return arguments
	}
	if v, ok := args[inputParam]; ok {
		return stringify(v)
	}
	if len(args) == 1 {
		for _, v := range args {
			return stringify(v)
		}
	}
	for _, key := range []string{"query", "expression", "operation", "location", "url"} {
		if v, ok := args[key]; ok {
			return stringify(v)
		}
	}
	return arguments
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	bs, _ := json.Marshal(v)
	return string(bs)
}

// classify marks transport failures and 5xx/404 answers as unavailability
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if engine.UnavailableStatus(apiErr.HTTPStatusCode) {
			return engine.Unavailable(err)
		}
		return fmt.Errorf("engine error (status %d): %w", apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		if engine.UnavailableStatus(reqErr.HTTPStatusCode) {
			return engine.Unavailable(err)
		}
		return fmt.Errorf("engine error (status %d): %w", reqErr.HTTPStatusCode, err)
	}
	return engine.Classify(err)
}
