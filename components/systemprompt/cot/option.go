package cot

import "github.com/bububa/vexa/components/systemprompt"

type Option = func(g *Generator)

// WithAgentName names the assistant in the default persona
func WithAgentName(name string) Option {
	return func(g *Generator) {
		g.agentName = name
	}
}

// WithBackground replaces the persona lines
func WithBackground(background []string) Option {
	return func(g *Generator) {
		g.background = background
	}
}

// WithSteps replaces the tool-use steps
func WithSteps(steps []string) Option {
	return func(g *Generator) {
		g.steps = steps
	}
}

// WithOutputInstructs replaces the answer guidelines
func WithOutputInstructs(outputInstructs []string) Option {
	return func(g *Generator) {
		g.outputInstructs = outputInstructs
	}
}

func WithContextProviders(providers ...systemprompt.ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}
