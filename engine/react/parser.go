package react

import (
	"regexp"
	"strings"

	"github.com/bububa/vexa/engine"
)

const finalAnswerMarker = "Final Answer:"

var actionRe = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)

// Parse reads a ReAct completion. An Action that comes before any Final
// Answer is a tool call; text that follows neither shape is the answer.
func Parse(text string) engine.Decision {
	finalIdx := strings.Index(text, finalAnswerMarker)
	if loc := actionRe.FindStringSubmatchIndex(text); loc != nil && (finalIdx < 0 || loc[0] < finalIdx) {
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		input := text[loc[4]:loc[5]]
		if idx := strings.Index(input, "\nObservation"); idx >= 0 {
			input = input[:idx]
		}
		if finalIdx >= 0 {
			if idx := strings.Index(input, finalAnswerMarker); idx >= 0 {
				input = input[:idx]
			}
		}
		d := engine.ToolCall(cleanName(name), cleanInput(input))
		d.Text = thought(text[:loc[0]])
		return d
	}
	if finalIdx >= 0 {
		return engine.Answer(strings.TrimSpace(text[finalIdx+len(finalAnswerMarker):]))
	}
	return engine.Answer(thought(text))
}

// thought drops the Thought: label the prompt primes the model with
func thought(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Thought:")
	return strings.TrimSpace(text)
}

func cleanName(name string) string {
	name = strings.SplitN(name, "\n", 2)[0]
	name = strings.Trim(strings.TrimSpace(name), "`*[]\"'")
	return strings.TrimSpace(name)
}

func cleanInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.Trim(input, "`")
	input = strings.TrimSpace(input)
	if len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"' {
		input = input[1 : len(input)-1]
	}
	return input
}
