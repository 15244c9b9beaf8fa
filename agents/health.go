package agents

import (
	"context"
	"log/slog"

	"github.com/bububa/vexa/engine"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	// HealthQuery is the probe question
	HealthQuery = "Say hello"
)

// Health is the result of a probe query
type Health struct {
	Status           string `json:"status" yaml:"status"`
	Model            string `json:"model" yaml:"model"`
	Engine           string `json:"engine" yaml:"engine"`
	ToolsCount       int    `json:"tools_count" yaml:"tools_count"`
	TestQuerySuccess bool   `json:"test_query_success" yaml:"test_query_success"`
	Error            string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Healthy reports whether the probe succeeded
func (h Health) Healthy() bool {
	return h.Status == StatusHealthy
}

// HealthCheck runs a probe query through the loop. Start and end hooks are
// not called, so probes stay out of query metrics.
func (a *Agent) HealthCheck(ctx context.Context) Health {
	res := a.query(ctx, HealthQuery)
	ret := Health{
		Status:           StatusUnhealthy,
		Model:            a.model,
		Engine:           a.engine.Name(),
		ToolsCount:       a.registry.Len(),
		TestQuerySuccess: res.Success,
		Error:            res.Error,
	}
	if res.Model != "" {
		ret.Model = res.Model
	}
	if res.Success {
		ret.Status = StatusHealthy
	}
	return ret
}

// ModelInfo describes the agent setup
type ModelInfo struct {
	Name            string   `json:"name" yaml:"name"`
	Version         string   `json:"version" yaml:"version"`
	ModelName       string   `json:"model_name" yaml:"model_name"`
	Engine          string   `json:"engine" yaml:"engine"`
	AvailableModels []string `json:"available_models" yaml:"available_models"`
	// InstalledModels models the engine reports, when it can list them
	InstalledModels []string `json:"installed_models,omitempty" yaml:"installed_models,omitempty"`
	NumTools        int      `json:"num_tools" yaml:"num_tools"`
	Tools           []string `json:"tools" yaml:"tools"`
}

// Info reports model and tool information. Listing installed models is
// best effort.
func (a *Agent) Info(ctx context.Context) ModelInfo {
	ret := ModelInfo{
		Name:            a.name,
		Version:         a.version,
		ModelName:       a.model,
		Engine:          a.engine.Name(),
		AvailableModels: a.availableModels,
		NumTools:        a.registry.Len(),
		Tools:           a.registry.Names(),
	}
	if lister, ok := a.engine.(engine.ModelLister); ok {
		models, err := lister.Models(ctx)
		if err != nil {
			a.logger.Debug("listing models failed", slog.Any("error", err))
		} else {
			ret.InstalledModels = models
		}
	}
	return ret
}
