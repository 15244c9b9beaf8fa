package cot

import (
	"fmt"

	"github.com/bububa/vexa/components/systemprompt"
)

// DefaultAgentName is the assistant name used in the default persona
const DefaultAgentName = "VEXA"

// Persona returns the default background for an assistant called name
func Persona(name string) []string {
	return []string{
		fmt.Sprintf("- You are %s, a helpful and intelligent AI assistant.", name),
		"- You have access to various tools to help answer questions and perform tasks.",
	}
}

// DefaultSteps describe when to reach for a tool
var DefaultSteps = []string{
	"- Decide whether the question can be answered directly.",
	"- Use a tool when you need current information or to perform a specific task such as arithmetic, the date, files or a web search.",
	"- Call at most one tool, then answer using its result.",
}

// DefaultOutputInstructs are the answer guidelines
var DefaultOutputInstructs = []string{
	"- Be helpful, accurate, and concise in your responses.",
	"- Always provide the most accurate and up-to-date information possible.",
	"- If you're unsure about something, say so rather than guessing.",
}

// Generator is Chain-of-Thought system prompt generator
type Generator struct {
	systemprompt.BaseGenerator
	agentName       string
	background      []string
	steps           []string
	outputInstructs []string
}

var _ systemprompt.Generator = (*Generator)(nil)

// New returns a new system prompt Generator
func New(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	if ret.agentName == "" {
		ret.agentName = DefaultAgentName
	}
	if len(ret.background) == 0 {
		ret.background = Persona(ret.agentName)
	}
	if len(ret.steps) == 0 {
		ret.steps = DefaultSteps
	}
	if len(ret.outputInstructs) == 0 {
		ret.outputInstructs = DefaultOutputInstructs
	}
	return ret
}

func (g *Generator) Generate() string {
	var (
		sections = map[string][]string{
			"IDENTITY and PURPOSE":     g.background,
			"INTERNAL ASSISTANT STEPS": g.steps,
			"OUTPUT INSTRUCTIONS":      g.outputInstructs,
		}
		promptParts []string
	)
	for _, title := range []string{"IDENTITY and PURPOSE", "INTERNAL ASSISTANT STEPS", "OUTPUT INSTRUCTIONS"} {
		content := sections[title]
		if len(content) > 0 {
			promptParts = append(promptParts, fmt.Sprintf("# %s", title))
			promptParts = append(promptParts, content...)
			promptParts = append(promptParts, "")
		}
	}
	promptParts = append(promptParts, g.RenderContext("EXTRA INFORMATION AND CONTEXT")...)
	return systemprompt.Join(promptParts)
}
