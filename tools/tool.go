package tools

import (
	"context"
	"errors"
)

var (
	// ErrNotFound no tool is registered under the requested name
	ErrNotFound = errors.New("tool not found")
	// ErrDuplicate a tool with the same name is already registered
	ErrDuplicate = errors.New("tool already registered")
	// ErrInvalidSpec the tool spec failed validation
	ErrInvalidSpec = errors.New("invalid tool spec")
)

// InvokeFunc runs a tool on a single string argument
type InvokeFunc func(ctx context.Context, argument string) (string, error)

// Tool is anything the engine may call by name
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, argument string) (string, error)
}

// Spec is a registered tool: a unique name, the description the engine
// reads to decide on invocation, and the callable itself.
type Spec struct {
	// Name unique name of the tool, also the function name shown to the engine
	Name string `json:"name" validate:"required,toolname"`
	// Description natural-language hint for the engine
	Description string `json:"description" validate:"required"`
	// Invoke the tool callable
	Invoke InvokeFunc `json:"-" validate:"required"`
}

// NewSpec returns a Spec
func NewSpec(name, description string, fn InvokeFunc) Spec {
	return Spec{
		Name:        name,
		Description: description,
		Invoke:      fn,
	}
}

// SpecOf converts a Tool to a Spec
func SpecOf(t Tool) Spec {
	return NewSpec(t.Name(), t.Description(), t.Invoke)
}

// Func builds a Spec from a context-free string function
func Func(name, description string, fn func(string) string) Spec {
	var invoke InvokeFunc
	if fn != nil {
		invoke = func(_ context.Context, argument string) (string, error) {
			return fn(argument), nil
		}
	}
	return NewSpec(name, description, invoke)
}
