package simple

import (
	"github.com/bububa/vexa/components/systemprompt"
)

// Generator renders a user supplied system prompt followed by context
type Generator struct {
	systemprompt.BaseGenerator
	content string
}

var _ systemprompt.Generator = (*Generator)(nil)

type Option = func(g *Generator)

// WithContextProviders appends context sections after the content
func WithContextProviders(providers ...systemprompt.ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}

// New returns a new system prompt Generator
func New(content string, options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	ret.content = content
	return ret
}

func (g *Generator) Generate() string {
	promptParts := []string{g.content, ""}
	promptParts = append(promptParts, g.RenderContext("EXTRA INFORMATION AND CONTEXT")...)
	return systemprompt.Join(promptParts)
}
