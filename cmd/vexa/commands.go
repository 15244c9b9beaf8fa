package main

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/metrics"
	"github.com/bububa/vexa/render"
	"github.com/bububa/vexa/web"
)

var (
	errQueryFailed = errors.New("query failed")
	errUnhealthy   = errors.New("agent is unhealthy")
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		query  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Answer a single question and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				query = strings.Join(args, " ")
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			agent, err := a.newAgent()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f == render.FormatText {
				render.Query(out, query)
			}
			res := agent.Query(cmd.Context(), query)
			if err := render.Result(out, f, res, a.verbose); err != nil {
				return err
			}
			if !res.Success {
				return errQueryFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "question to answer")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show available tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}
			render.Tools(cmd.OutOrStdout(), registry.Title()+":\n"+registry.Info())
			return nil
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	var installed bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !installed {
				render.Models(out, a.cfg.Agent.Models, a.cfg.Model())
				return nil
			}
			agent, err := a.newAgent()
			if err != nil {
				return err
			}
			info := agent.Info(cmd.Context())
			if len(info.InstalledModels) == 0 {
				return errors.New("the engine did not report any installed models")
			}
			render.Models(out, info.InstalledModels, info.ModelName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&installed, "installed", false, "ask the model runtime which models are installed")
	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Run a probe query against the engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			agent, err := a.newAgent()
			if err != nil {
				return err
			}
			h := agent.HealthCheck(cmd.Context())
			if err := render.Health(cmd.OutOrStdout(), f, h); err != nil {
				return err
			}
			if !h.Healthy() {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}
			agent, err := a.newAgent(m.AgentOptions()...)
			if err != nil {
				return err
			}
			logHealth(a, agent, cmd)
			srv := web.New(agent,
				web.WithLogger(logging.Component(a.logger, "web")),
				web.WithGatherer(reg),
				web.WithDebug(a.verbose),
			)
			return srv.Run(cmd.Context(), a.cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :7860)")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// logHealth reports a failing probe without stopping the server; the
// runtime may come up later.
func logHealth(a *app, agent *agents.Agent, cmd *cobra.Command) {
	h := agent.HealthCheck(cmd.Context())
	if h.Healthy() {
		a.logger.Info("agent ready", "model", h.Model, "engine", h.Engine, "tools", h.ToolsCount)
		return
	}
	a.logger.Warn("agent health check failed", "model", h.Model, "error", h.Error)
}
