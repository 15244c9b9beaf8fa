package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/engine/mock"
	"github.com/bububa/vexa/engine/rules"
	"github.com/bububa/vexa/schema"
)

func TestHealthCheck(t *testing.T) {
	calc := newCounting("")
	h := newAgent(t, mock.Answers("Hello!"), calc.spec("calculator")).HealthCheck(context.Background())
	assert.True(t, h.Healthy())
	assert.Equal(t, StatusHealthy, h.Status)
	assert.Equal(t, 1, h.ToolsCount)
	assert.True(t, h.TestQuerySuccess)
	assert.Equal(t, "mock", h.Model)

	h = newAgent(t, mock.Fails(engine.ErrUnavailable)).HealthCheck(context.Background())
	assert.False(t, h.Healthy())
	assert.Equal(t, StatusUnhealthy, h.Status)
	assert.Equal(t, "engine unavailable", h.Error)
	assert.Equal(t, "mistral", h.Model)
}

func TestHealthCheckSkipsQueryHooks(t *testing.T) {
	var starts, ends int
	agent := New(newRegistry(t), mock.New(mock.Step{Decision: engine.Answer("Hello!")}, mock.Step{Decision: engine.Answer("Hi")}),
		WithTokenCounter(tokenizer.WordsCounter{}),
		WithStartHook(func(context.Context, *Agent, string) { starts++ }),
		WithEndHook(func(context.Context, *Agent, schema.QueryResult) { ends++ }),
	)
	assert.True(t, agent.HealthCheck(context.Background()).Healthy())
	assert.Zero(t, starts)
	assert.Zero(t, ends)

	agent.Query(context.Background(), "hi")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)
}

type listingEngine struct {
	*mock.Engine
	models []string
	err    error
}

func (l listingEngine) Models(context.Context) ([]string, error) {
	return l.models, l.err
}

func TestInfo(t *testing.T) {
	calc := newCounting("")
	clock := newCounting("")
	agent := newAgent(t, listingEngine{Engine: mock.New(), models: []string{"mistral:latest"}}, calc.spec("calculator"), clock.spec("datetime"))
	info := agent.Info(context.Background())
	assert.Equal(t, "VEXA", info.Name)
	assert.Equal(t, "mistral", info.ModelName)
	assert.Equal(t, DefaultModels, info.AvailableModels)
	assert.Equal(t, []string{"mistral:latest"}, info.InstalledModels)
	assert.Equal(t, 2, info.NumTools)
	assert.Equal(t, []string{"calculator", "datetime"}, info.Tools)

	info = newAgent(t, listingEngine{Engine: mock.New(), err: errors.New("down")}).Info(context.Background())
	assert.Nil(t, info.InstalledModels)

	info = newAgent(t, rules.New()).Info(context.Background())
	assert.Equal(t, "rules", info.Engine)
	assert.Equal(t, []string{rules.Model}, info.InstalledModels)
}
