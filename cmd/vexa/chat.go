package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/config"
	"github.com/bububa/vexa/render"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat (the default command)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	agent, err := a.newAgent()
	if err != nil {
		return err
	}
	if a.cfg.Engine.Kind != config.EngineRules {
		fmt.Fprintf(out, "🔄 Initializing %s with model: %s\n", agent.Name(), agent.Model())
		h := agent.HealthCheck(cmd.Context())
		if err := render.Health(out, render.FormatText, h); err != nil {
			return err
		}
		if !h.Healthy() {
			return errUnhealthy
		}
	}

	render.Welcome(out, agent.Name(), agent.Version())
	fmt.Fprintf(out, "\n🔧 Model: %s\n🛠️  Tools: %d available\n", agent.Model(), agent.Registry().Len())
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "💬 You: ",
		HistoryFile:       historyFile(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            out,
		Stderr:            cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	s := &session{agent: agent, out: out, verbose: a.verbose}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				fmt.Fprintln(out, "\n👋 Goodbye!")
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "\n👋 Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		if !s.handle(cmd.Context(), line) {
			return nil
		}
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vexa_history")
}

// session handles one chat line at a time
type session struct {
	agent   *agents.Agent
	out     io.Writer
	verbose bool
}

// handle runs a chat line and reports whether the chat goes on
func (s *session) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return true
	case "exit", "quit", "bye", "q":
		fmt.Fprintln(s.out, "👋 Goodbye!")
		return false
	case "help", "tools":
		render.Tools(s.out, s.agent.ListTools())
		return true
	case "model", "info":
		fmt.Fprintln(s.out)
		_ = render.Info(s.out, render.FormatText, s.agent.Info(ctx))
		return true
	}
	fmt.Fprintln(s.out)
	render.Query(s.out, line)
	res := s.agent.Query(ctx, line)
	fmt.Fprintln(s.out)
	_ = render.Result(s.out, render.FormatText, res, s.verbose)
	return true
}
