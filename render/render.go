// Package render writes agent results for humans (text) and scripts (json, yaml).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/schema"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

const rule = "--------------------------------------------------"

// Encode writes v as json or yaml
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s cannot encode values", format)
	}
}

// Result writes a query result. In text form verbose adds the tool used,
// the model, the duration and the tokens spent.
func Result(w io.Writer, format Format, res schema.QueryResult, verbose bool) error {
	if format != FormatText {
		return Encode(w, format, res)
	}
	if res.Success {
		fmt.Fprintf(w, "%s %s\n", green("✅ VEXA:"), res.Response)
	} else {
		fmt.Fprintf(w, "%s %s\n", red("❌ Error:"), res.Response)
		if res.Error != "" {
			fmt.Fprintf(w, "%s %s\n", gray("Details:"), res.Error)
		}
	}
	if verbose {
		if res.HasTool() {
			fmt.Fprintf(w, "%s %s\n", gray("Tool:"), res.ToolUsed)
		}
		fmt.Fprintf(w, "%s %s, %s", gray("Model:"), res.Model, res.Duration.Round(1e6))
		if res.Usage != nil && res.Usage.Total() > 0 {
			fmt.Fprintf(w, ", %d tokens", res.Usage.Total())
		}
		fmt.Fprintln(w)
	}
	return nil
}

// Query writes the header printed before a query runs
func Query(w io.Writer, query string) {
	fmt.Fprintf(w, "%s %s\n%s\n", cyan("🤖 Processing:"), query, rule)
}

// Health writes a health report
func Health(w io.Writer, format Format, h agents.Health) error {
	if format != FormatText {
		return Encode(w, format, h)
	}
	if h.Healthy() {
		fmt.Fprintf(w, "%s %s (%s, %d tools)\n", green("✅ healthy:"), h.Model, h.Engine, h.ToolsCount)
		return nil
	}
	fmt.Fprintf(w, "%s %s (%s, %d tools)\n", red("❌ unhealthy:"), h.Model, h.Engine, h.ToolsCount)
	if h.Error != "" {
		fmt.Fprintf(w, "%s %s\n", gray("Details:"), h.Error)
	}
	fmt.Fprintln(w, "\n💡 Troubleshooting tips:")
	fmt.Fprintln(w, "   1. Make sure Ollama is running: ollama serve")
	fmt.Fprintf(w, "   2. Make sure the model is installed: ollama pull %s\n", h.Model)
	fmt.Fprintln(w, "   3. Check if the model name is correct")
	return nil
}

// Info writes model and tool information
func Info(w io.Writer, format Format, info agents.ModelInfo) error {
	if format != FormatText {
		return Encode(w, format, info)
	}
	fmt.Fprintf(w, "%s %s v%s (%s)\n", bold("📊"), info.Name, info.Version, info.Engine)
	fmt.Fprintf(w, "📊 Model: %s\n", info.ModelName)
	fmt.Fprintf(w, "🛠️  Tools: %s\n", strings.Join(info.Tools, ", "))
	if len(info.InstalledModels) > 0 {
		fmt.Fprintf(w, "📦 Installed: %s\n", strings.Join(info.InstalledModels, ", "))
	}
	return nil
}

// Models lists models, marking the current one
func Models(w io.Writer, models []string, current string) {
	fmt.Fprintln(w, "📋 Available models:")
	for _, model := range models {
		marker := ""
		if model == current {
			marker = gray(" (default)")
		}
		fmt.Fprintf(w, "   • %s%s\n", model, marker)
	}
}

// ExampleQueries are shown with the tools listing
var ExampleQueries = []string{
	"What's the weather like in New York?",
	"Calculate 15 * 23 + 45",
	"What's the current date?",
	"Search for latest AI news",
	"List files in current directory",
}

// Tools writes the tools help screen
func Tools(w io.Writer, listing string) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, bold("🛠️  VEXA TOOLS INFORMATION"))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, listing)
	fmt.Fprintln(w, "\nExample queries:")
	for _, q := range ExampleQueries {
		fmt.Fprintf(w, "  • %s\n", q)
	}
}

// Welcome writes the chat banner
func Welcome(w io.Writer, name, version string) {
	fmt.Fprintf(w, "🤖 Welcome to %s v%s!\n\n", bold(name), version)
	fmt.Fprintln(w, "✅ Privacy-focused AI Assistant")
	fmt.Fprintln(w, "🔍 Web search capabilities")
	fmt.Fprintln(w, "🖥️  100% offline-ready")
	fmt.Fprintln(w, "🔧 Powered by open-source LLMs")
	fmt.Fprintln(w, "\nType your question or 'exit' to quit.")
}
