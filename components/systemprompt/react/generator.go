package react

import (
	"fmt"
	"strings"

	"github.com/bububa/vexa/components/systemprompt"
)

const DefaultPersona = "You are VEXA, a helpful and intelligent AI assistant. You have access to various tools to help answer questions and perform tasks."

var DefaultGuidelines = []string{
	"- Be helpful, accurate, and concise in your responses",
	"- Use tools when you need current information or to perform specific tasks",
	"- If you can answer directly without tools, feel free to do so",
	"- Always provide the most accurate and up-to-date information possible",
	"- If you're unsure about something, say so rather than guessing",
}

const format = `Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Action Input: the input to the action
Observation: the result of the action
Thought: I now know the final answer
Final Answer: the final answer to the original input question`

// directFormat is used when no tools are offered
const directFormat = `Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Final Answer: the final answer to the original input question`

// Tool is the name and description shown in the prompt
type Tool struct {
	Name        string
	Description string
}

// Generator renders the ReAct (Thought/Action/Observation) system prompt
type Generator struct {
	systemprompt.BaseGenerator
	persona    string
	guidelines []string
	tools      []Tool
}

var _ systemprompt.Generator = (*Generator)(nil)

type Option = func(g *Generator)

func WithPersona(persona string) Option {
	return func(g *Generator) {
		g.persona = persona
	}
}

func WithGuidelines(guidelines []string) Option {
	return func(g *Generator) {
		g.guidelines = guidelines
	}
}

func WithTools(tools ...Tool) Option {
	return func(g *Generator) {
		g.tools = append(g.tools, tools...)
	}
}

func WithContextProviders(providers ...systemprompt.ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}

func New(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	if ret.persona == "" {
		ret.persona = DefaultPersona
	}
	if len(ret.guidelines) == 0 {
		ret.guidelines = DefaultGuidelines
	}
	return ret
}

func (g *Generator) Generate() string {
	promptParts := []string{g.persona, ""}
	if len(g.tools) > 0 {
		names := make([]string, 0, len(g.tools))
		promptParts = append(promptParts, "You have access to the following tools:")
		for _, t := range g.tools {
			promptParts = append(promptParts, fmt.Sprintf("%s: %s", t.Name, t.Description))
			names = append(names, t.Name)
		}
		promptParts = append(promptParts, "", fmt.Sprintf(format, strings.Join(names, ", ")), "")
	} else {
		promptParts = append(promptParts, directFormat, "")
	}
	promptParts = append(promptParts, "Important guidelines:")
	promptParts = append(promptParts, g.guidelines...)
	promptParts = append(promptParts, "")
	promptParts = append(promptParts, g.RenderContext("EXTRA INFORMATION AND CONTEXT")...)
	promptParts = append(promptParts, "Begin!")
	return systemprompt.Join(promptParts)
}
