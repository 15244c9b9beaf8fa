package agents

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/bububa/vexa/components/systemprompt"
	"github.com/bububa/vexa/components/systemprompt/cot"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/errorsx"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/schema"
	"github.com/bububa/vexa/tools"
)

const (
	DefaultName              = "VEXA"
	DefaultVersion           = "1.0.0"
	DefaultObservationBudget = 1024
)

// DefaultModels are the models VEXA is known to work with
var DefaultModels = []string{"mistral", "llama2", "llama3", "codellama", "neural-chat", "orca-mini"}

// ErrEmptyQuery the question was blank
var ErrEmptyQuery = errors.New("empty query")

// Agent answers questions with an engine and at most one tool call per question.
// It holds no per-query state, so one Agent serves every front end.
type Agent struct {
	name                  string
	version               string
	model                 string
	availableModels       []string
	systemPromptGenerator systemprompt.Generator
	logger                *slog.Logger
	counter               tokenizer.Counter
	observationBudget     int

	registry *tools.Registry
	engine   engine.Engine
	now      func() time.Time

	startHook func(context.Context, *Agent, string)
	endHook   func(context.Context, *Agent, schema.QueryResult)
	toolHook  func(context.Context, *Agent, ToolCall)
}

// New initializes the Agent over a populated registry
func New(registry *tools.Registry, eng engine.Engine, options ...Option) *Agent {
	ret := &Agent{
		registry:          registry,
		engine:            eng,
		observationBudget: DefaultObservationBudget,
		now:               time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.name == "" {
		ret.name = DefaultName
	}
	if ret.version == "" {
		ret.version = DefaultVersion
	}
	if len(ret.availableModels) == 0 {
		ret.availableModels = DefaultModels
	}
	if ret.logger == nil {
		ret.logger = logging.Discard()
	}
	if ret.counter == nil {
		ret.counter = tokenizer.Default()
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = cot.New(cot.WithAgentName(ret.name))
	}
	ret.systemPromptGenerator.AddContextProviders(registry)
	if ret.model != "" && !ret.ValidateModel(ret.model) {
		ret.logger.Warn("model not in validated list, proceeding anyway", slog.String("model", ret.model))
	}
	return ret
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Version() string {
	return a.version
}

func (a *Agent) Model() string {
	return a.model
}

func (a *Agent) Engine() engine.Engine {
	return a.engine
}

func (a *Agent) Registry() *tools.Registry {
	return a.registry
}

// ValidateModel reports whether model is in the validated list
func (a *Agent) ValidateModel(model string) bool {
	return slices.Contains(a.availableModels, model)
}

// SystemPrompt returns the system prompt
func (a *Agent) SystemPrompt() string {
	return a.systemPromptGenerator.Generate()
}

// ListTools renders the help listing of registered tools
func (a *Agent) ListTools() string {
	return a.registry.Title() + ":\n" + a.registry.Info()
}

// Query answers text. It never returns an error or panics: every failure
// is reported through the result.
func (a *Agent) Query(ctx context.Context, text string) schema.QueryResult {
	startAt := a.now()
	if fn := a.startHook; fn != nil {
		fn(ctx, a, text)
	}
	result := a.query(ctx, text)
	result.Duration = a.now().Sub(startAt)
	if fn := a.endHook; fn != nil {
		fn(ctx, a, result)
	}
	return result
}

func (a *Agent) query(ctx context.Context, text string) schema.QueryResult {
	n := a.newNormalizer(xid.New().String(), text)
	question := strings.TrimSpace(text)
	if question == "" {
		return n.failure(errorsx.Wrap(ErrEmptyQuery, errorsx.ReasonEmptyQuery))
	}
	logger := a.logger.With(slog.String("query_id", n.id))
	prompt := engine.Prompt{
		System:   a.SystemPrompt(),
		Question: question,
		Tools:    a.descriptors(),
	}
	decision, err := a.generate(ctx, prompt)
	if err != nil {
		logger.Error("engine call failed", slog.Any("error", err))
		return n.failure(err)
	}
	n.observe(decision)
	if !decision.IsToolCall() {
		logger.Debug("direct answer")
		return n.answer(decision.Text)
	}

	logger.Debug("tool requested", slog.String("tool", decision.ToolName), slog.String("argument", decision.ToolArgument))
	call := a.dispatch(ctx, decision)
	if call.Resolved {
		n.toolUsed = call.Name
	}
	prompt.Observation = &engine.Observation{
		CallID:   decision.CallID,
		ToolName: decision.ToolName,
		Argument: decision.ToolArgument,
		Output:   call.Observation,
		Thought:  decision.Text,
	}
	final, err := a.generate(ctx, prompt)
	if err != nil {
		logger.Error("engine call after tool failed", slog.Any("error", err))
		return n.failure(err)
	}
	n.observe(final)
	if final.IsToolCall() {
		// one tool per question: a second request is not honoured, and the
		// text next to it is the engine's reasoning, not an answer
		logger.Warn("engine requested a second tool, answering with the tool output",
			slog.String("tool", final.ToolName), slog.String("thought", final.Text))
		return n.answer(call.Observation)
	}
	return n.answer(final.Text)
}

// generate calls the engine, turning a panic into an error
func (a *Agent) generate(ctx context.Context, prompt engine.Prompt) (d engine.Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorsx.Errorf(errorsx.ReasonEngineResponse, "engine panic: %v", r)
		}
	}()
	d, err = a.engine.Generate(ctx, prompt)
	if err != nil {
		return d, err
	}
	if d.Kind == engine.KindToolCall && strings.TrimSpace(d.ToolName) == "" {
		// a tool call without a tool is read as an answer
		d.Kind = engine.KindAnswer
	}
	return d, nil
}

func (a *Agent) descriptors() []engine.ToolDescriptor {
	specs := a.registry.List()
	ret := make([]engine.ToolDescriptor, 0, len(specs))
	for _, spec := range specs {
		ret = append(ret, engine.ToolDescriptor{Name: spec.Name, Description: spec.Description})
	}
	return ret
}
