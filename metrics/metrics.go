// Package metrics exposes prometheus collectors fed by agent hooks.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/errorsx"
	"github.com/bububa/vexa/schema"
)

const namespace = "vexa"

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the query and tool collectors
type Metrics struct {
	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	inFlight      prometheus.Gauge
	toolCalls     *prometheus.CounterVec
	toolDuration  *prometheus.HistogramVec
	tokens        *prometheus.CounterVec
}

// New registers the collectors with reg, the default registerer when nil.
// Collectors already registered under the same names are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "queries_total",
			Help:      "Queries answered, by status and failure reason.",
		}, []string{"status", "reason"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "query_duration_seconds",
			Help:      "Wall time spent answering a query.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "queries_in_flight",
			Help:      "Queries currently being answered.",
		}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "calls_total",
			Help:      "Tool dispatches, by tool and status.",
		}, []string{"tool", "status", "reason"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "call_duration_seconds",
			Help:      "Time spent inside a tool.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "tokens_total",
			Help:      "Tokens reported by the engine.",
		}, []string{"direction"}),
	}
	if err := register(reg, &m.queries, &m.queryDuration, &m.inFlight, &m.toolCalls, &m.toolDuration, &m.tokens); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers every collector, swapping in the existing one on
// AlreadyRegisteredError
func register(reg prometheus.Registerer, collectors ...any) error {
	for _, c := range collectors {
		var err error
		switch v := c.(type) {
		case **prometheus.CounterVec:
			*v, err = reuse(reg, *v)
		case *prometheus.Histogram:
			*v, err = reuse(reg, *v)
		case *prometheus.Gauge:
			*v, err = reuse(reg, *v)
		case **prometheus.HistogramVec:
			*v, err = reuse(reg, *v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func reuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}

// AgentOptions returns the hooks feeding the collectors
func (m *Metrics) AgentOptions() []agents.Option {
	return []agents.Option{
		agents.WithStartHook(m.onStart),
		agents.WithEndHook(m.onEnd),
		agents.WithToolHook(m.onTool),
	}
}

func (m *Metrics) onStart(context.Context, *agents.Agent, string) {
	m.inFlight.Inc()
}

func (m *Metrics) onEnd(_ context.Context, _ *agents.Agent, res schema.QueryResult) {
	m.inFlight.Dec()
	m.ObserveQuery(res)
}

func (m *Metrics) onTool(_ context.Context, _ *agents.Agent, call agents.ToolCall) {
	m.ObserveTool(call)
}

// ObserveQuery records a finished query
func (m *Metrics) ObserveQuery(res schema.QueryResult) {
	status := StatusSuccess
	if !res.Success {
		status = StatusFailure
	}
	m.queries.WithLabelValues(status, res.Reason).Inc()
	m.queryDuration.Observe(res.Duration.Seconds())
	if res.Usage != nil {
		m.tokens.WithLabelValues("input").Add(float64(res.Usage.InputTokens))
		m.tokens.WithLabelValues("output").Add(float64(res.Usage.OutputTokens))
	}
}

// ObserveTool records a tool dispatch
func (m *Metrics) ObserveTool(call agents.ToolCall) {
	status, reason := StatusSuccess, ""
	if call.Failed() {
		status, reason = StatusFailure, string(errorsx.Reason(call.Err))
	}
	if !call.Resolved {
		// names the engine made up stay out of the label space
		m.toolCalls.WithLabelValues("unknown", status, reason).Inc()
		return
	}
	m.toolCalls.WithLabelValues(call.Name, status, reason).Inc()
	m.toolDuration.WithLabelValues(call.Name).Observe(call.Duration.Seconds())
}
