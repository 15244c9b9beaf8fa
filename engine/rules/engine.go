package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bububa/vexa/engine"
)

// Model is reported as the model name of every decision
const Model = "offline"

var (
	mathRe   = regexp.MustCompile(`[0-9(][0-9+\-*/%.()\s]*[0-9)]`)
	searchRe = regexp.MustCompile(`(?i)^\s*(please\s+)?(search|look up|find)\s+(the web\s+)?(for\s+)?`)
)

// Engine routes questions to tools by keyword, without a language model.
// It keeps the agent usable when no model runtime is installed.
type Engine struct{}

var (
	_ engine.Engine      = (*Engine)(nil)
	_ engine.ModelLister = (*Engine)(nil)
)

func New() *Engine {
	return new(Engine)
}

func (e *Engine) Name() string {
	return "rules"
}

func (e *Engine) Models(context.Context) ([]string, error) {
	return []string{Model}, nil
}

func (e *Engine) Generate(ctx context.Context, prompt engine.Prompt) (engine.Decision, error) {
	if err := ctx.Err(); err != nil {
		return engine.Decision{}, err
	}
	var d engine.Decision
	if obs := prompt.Observation; obs != nil {
		d = engine.Answer(fmt.Sprintf("Using the %s tool:\n%s", obs.ToolName, obs.Output))
	} else {
		d = route(prompt.Question, available(prompt.Tools))
	}
	d.Model = Model
	return d, nil
}

func available(tools []engine.ToolDescriptor) map[string]bool {
	ret := make(map[string]bool, len(tools))
	for _, t := range tools {
		ret[t.Name] = true
	}
	return ret
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func route(question string, tools map[string]bool) engine.Decision {
	lower := strings.ToLower(question)
	switch {
	case tools["calculator"] && (containsAny(lower, "calculate", "math", "compute") || hasArithmetic(question)):
		return engine.ToolCall("calculator", expression(question))
	case tools["datetime"] && containsAny(lower, "time", "date", "today", "now"):
		arg := ""
		if containsAny(lower, "date", "today") {
			arg = "date"
		} else if strings.Contains(lower, "time") {
			arg = "time"
		}
		return engine.ToolCall("datetime", arg)
	case tools["file_ops"] && containsAny(lower, "list", "files", "directory", "folder"):
		if containsAny(lower, "current directory", "pwd", "where am i") && !strings.Contains(lower, "list") {
			return engine.ToolCall("file_ops", "pwd")
		}
		return engine.ToolCall("file_ops", "list")
	case tools["weather"] && strings.Contains(lower, "weather"):
		return engine.ToolCall("weather", location(question))
	case tools["web_search"] && containsAny(lower, "search", "news", "weather", "find", "look up", "who is", "what is"):
		return engine.ToolCall("web_search", strings.TrimSpace(searchRe.ReplaceAllString(question, "")))
	case containsAny(lower, "help", "tools", "commands"):
		return engine.Answer(help(tools))
	default:
		return engine.Answer(fmt.Sprintf("Hello! I'm VEXA running in offline mode. Your question was: '%s'\n\n"+
			"With a model runtime available I can provide detailed answers, search the web, and use various tools to help you.", question))
	}
}

func hasArithmetic(question string) bool {
	for _, m := range mathRe.FindAllString(question, -1) {
		if strings.ContainsAny(m, "+-*/%") {
			return true
		}
	}
	return false
}

// expression picks the longest arithmetic run in the question
func expression(question string) string {
	var best string
	for _, m := range mathRe.FindAllString(question, -1) {
		m = strings.TrimSpace(m)
		if strings.ContainsAny(m, "+-*/%") && len(m) > len(best) {
			best = m
		}
	}
	if best == "" {
		return question
	}
	return best
}

func location(question string) string {
	lower := strings.ToLower(question)
	for _, marker := range []string{" in ", " for ", " at "} {
		if idx := strings.LastIndex(lower, marker); idx >= 0 {
			return strings.Trim(strings.TrimSpace(question[idx+len(marker):]), "?!.")
		}
	}
	return question
}

func help(tools map[string]bool) string {
	lines := []string{"Available commands:"}
	examples := []struct{ tool, line string }{
		{"calculator", "Calculator: \"calculate 2+2\", \"what's 15*23?\""},
		{"datetime", "DateTime: \"what time is it?\", \"current date\""},
		{"file_ops", "Files: \"list files\", \"show directory\""},
		{"web_search", "Search: \"search for AI news\""},
		{"weather", "Weather: \"weather in Paris\""},
	}
	for _, ex := range examples {
		if tools[ex.tool] {
			lines = append(lines, "- "+ex.line)
		}
	}
	lines = append(lines, "- Help: \"help\", \"tools\"", "- Exit: \"exit\", \"quit\", \"bye\"")
	return strings.Join(lines, "\n")
}
