package agents

import (
	"context"
	"log/slog"
	"time"

	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/engine"
	"github.com/bububa/vexa/errorsx"
	"github.com/bububa/vexa/tools"
)

// ToolCall records one dispatch
type ToolCall struct {
	Name     string
	Argument string
	// Resolved the name matched a registered tool and it was invoked
	Resolved bool
	// Output raw tool output, empty on failure
	Output string
	// Observation text handed back to the engine
	Observation string
	Err         error
	Duration    time.Duration
}

// Failed reports whether the tool could not produce output
func (c ToolCall) Failed() bool {
	return c.Err != nil
}

// dispatch resolves and invokes the requested tool exactly once. Tool errors,
// panics and unknown names become "Error: ..." observations.
func (a *Agent) dispatch(ctx context.Context, d engine.Decision) ToolCall {
	call := ToolCall{
		Name:     d.ToolName,
		Argument: d.ToolArgument,
	}
	startAt := a.now()
	spec, err := a.registry.Resolve(d.ToolName)
	if err != nil {
		call.Err = errorsx.Wrap(err, errorsx.ReasonToolNotFound)
	} else {
		call.Resolved = true
		call.Output, call.Err = invoke(ctx, spec, d.ToolArgument)
	}
	call.Duration = a.now().Sub(startAt)
	if call.Err != nil {
		call.Observation = "Error: " + call.Err.Error()
		a.logger.Warn("tool failed",
			slog.String("tool", call.Name),
			slog.String("reason", string(errorsx.Reason(call.Err))),
			slog.Any("error", call.Err))
	} else {
		call.Observation = tokenizer.Budget(a.counter, call.Output, a.observationBudget)
		a.logger.Debug("tool finished", slog.String("tool", call.Name), slog.Duration("duration", call.Duration))
	}
	if fn := a.toolHook; fn != nil {
		fn(ctx, a, call)
	}
	return call
}

func invoke(ctx context.Context, spec tools.Spec, argument string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = errorsx.Errorf(errorsx.ReasonToolPanic, "tool %s panicked: %v", spec.Name, r)
		}
	}()
	out, err = spec.Invoke(ctx, argument)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonToolExecution)
	}
	return out, nil
}
