package clock

import (
	"context"
	"strings"
	"time"

	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "datetime"
	defaultDescription = "Get current date and time information. Use 'date' for just date, 'time' for just time, or leave empty for both."
)

// Tool reports the current date and time
type Tool struct {
	tools.Config
	now func() time.Time
	loc *time.Location
}

var _ tools.Tool = (*Tool)(nil)

type Option func(t *Tool)

// WithNow replaces the time source
func WithNow(fn func() time.Time) Option {
	return func(t *Tool) {
		t.now = fn
	}
}

// WithLocation renders times in loc instead of the local zone
func WithLocation(loc *time.Location) Option {
	return func(t *Tool) {
		t.loc = loc
	}
}

func New(opts []Option, toolOpts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	if ret.loc == nil {
		ret.loc = time.Local
	}
	tools.Apply(&ret.Config, defaultName, defaultDescription, toolOpts...)
	return ret
}

func (t *Tool) Invoke(_ context.Context, argument string) (string, error) {
	now := t.now().In(t.loc)
	query := strings.ToLower(argument)
	switch {
	case strings.Contains(query, "date"):
		return "Current date: " + now.Format(time.DateOnly), nil
	case strings.Contains(query, "time"):
		return "Current time: " + now.Format(time.TimeOnly), nil
	default:
		return "Current date and time: " + now.Format(time.DateTime), nil
	}
}
