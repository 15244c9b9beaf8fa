package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/engine/mock"
	"github.com/bububa/vexa/schema"
	"github.com/bububa/vexa/tools"
)

func newAgent(t *testing.T, m *Metrics, eng engine.Engine) *agents.Agent {
	t.Helper()
	registry, err := tools.NewRegistry(
		tools.Func("echo", "echoes its input", func(s string) string { return s }),
		tools.NewSpec("broken", "always fails", func(context.Context, string) (string, error) {
			return "", errors.New("broken")
		}),
	)
	require.NoError(t, err)
	opts := append(m.AgentOptions(), agents.WithTokenCounter(tokenizer.WordsCounter{}))
	return agents.New(registry, eng, opts...)
}

func TestQueryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	newAgent(t, m, mock.Answers("hi")).Query(context.Background(), "hello")
	newAgent(t, m, mock.Fails(engine.ErrUnavailable)).Query(context.Background(), "hello")
	newAgent(t, m, mock.Answers("unused")).Query(context.Background(), " ")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.queries.WithLabelValues(StatusSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queries.WithLabelValues(StatusFailure, "engine_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queries.WithLabelValues(StatusFailure, "empty_query")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	families, err := reg.Gather()
	require.NoError(t, err)
	var observed uint64
	for _, mf := range families {
		if mf.GetName() == "vexa_agent_query_duration_seconds" {
			observed = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.EqualValues(t, 3, observed)
}

func TestToolMetrics(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	newAgent(t, m, mock.CallsTool("echo", "x", "done")).Query(context.Background(), "q")
	newAgent(t, m, mock.CallsTool("broken", "x", "sorry")).Query(context.Background(), "q")
	newAgent(t, m, mock.CallsTool("teleport", "x", "sorry")).Query(context.Background(), "q")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("echo", StatusSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("broken", StatusFailure, "tool_execution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("unknown", StatusFailure, "tool_not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.toolDuration))
}

func TestTokenMetrics(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	m.ObserveQuery(schema.QueryResult{Success: true, Usage: &schema.Usage{InputTokens: 12, OutputTokens: 3}})
	assert.Equal(t, 12.0, testutil.ToFloat64(m.tokens.WithLabelValues("input")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.tokens.WithLabelValues("output")))
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.ObserveQuery(schema.QueryResult{Success: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(second.queries.WithLabelValues(StatusSuccess, "")))
}
