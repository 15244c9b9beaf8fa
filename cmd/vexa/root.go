package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/config"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/tools"
	"github.com/bububa/vexa/tools/toolset"
)

// app carries what every command needs once flags are parsed
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	root := &cobra.Command{
		Use:   "vexa",
		Short: "VEXA - privacy-focused AI agent",
		Long: `VEXA answers questions with a local model and a small set of tools:
web search, calculator, date and time, and file listing.

Examples:
  vexa                          # interactive chat
  vexa -m llama2                # chat with a specific model
  vexa query -q "Hello"         # single query
  vexa tools                    # show available tools
  vexa --engine rules chat      # offline mode, no model runtime needed`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./vexa.yaml or ~/.vexa/vexa.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output and debug logging")
	flags.StringP("model", "m", "", "model to use")
	flags.String("engine", "", "engine: openai, react or rules")
	flags.String("base-url", "", "OpenAI compatible endpoint of the model runtime")
	_ = a.v.BindPFlag("engine.model", flags.Lookup("model"))
	_ = a.v.BindPFlag("engine.kind", flags.Lookup("engine"))
	_ = a.v.BindPFlag("engine.base_url", flags.Lookup("base-url"))

	root.AddCommand(
		newQueryCmd(a),
		newChatCmd(a),
		newToolsCmd(a),
		newModelsCmd(a),
		newServeCmd(a),
		newHealthCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg
	a.logger = logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
	if cfg.File != "" {
		a.logger.Debug("config loaded", slog.String("file", cfg.File))
	}
	return nil
}

func (a *app) registry() (*tools.Registry, error) {
	registry, err := toolset.Build(a.cfg.ToolSettings())
	if err != nil {
		return nil, fmt.Errorf("building tools: %w", err)
	}
	return registry, nil
}

// newAgent wires config, tools and engine; extra options are applied last
func (a *app) newAgent(extra ...agents.Option) (*agents.Agent, error) {
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}
	eng, err := a.cfg.NewEngine()
	if err != nil {
		return nil, err
	}
	opts := append(a.cfg.AgentOptions(a.logger), extra...)
	return agents.New(registry, eng, opts...), nil
}
