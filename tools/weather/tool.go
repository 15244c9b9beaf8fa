package weather

import (
	"context"
	"fmt"
	"strings"

	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "weather"
	defaultDescription = "Get weather information for a specific location. Input should be a city name or location."
)

// Tool is a placeholder until a weather provider is configured. It points
// the engine at web search instead.
type Tool struct {
	tools.Config
	fallback string
}

var _ tools.Tool = (*Tool)(nil)

// New returns the placeholder; fallback names the tool suggested instead
func New(fallback string, opts ...tools.Option) *Tool {
	if fallback == "" {
		fallback = "web_search"
	}
	ret := &Tool{fallback: fallback}
	tools.Apply(&ret.Config, defaultName, defaultDescription, opts...)
	return ret
}

func (t *Tool) Invoke(_ context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = "an unspecified location"
	}
	return fmt.Sprintf("Weather tool is available but requires API configuration for location: %s. Use %s for current weather information instead.", location, t.fallback), nil
}
