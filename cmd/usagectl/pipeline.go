package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/janekbaraniewski/usagectl/internal/agent"
	"github.com/janekbaraniewski/usagectl/internal/config"
	"github.com/janekbaraniewski/usagectl/internal/core"
	"github.com/janekbaraniewski/usagectl/internal/parsers"
	"github.com/janekbaraniewski/usagectl/internal/providers"
)

// exitError carries the process exit code past cobra without printing
// anything: the envelope on stdout is the only output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// fetchPipeline is the JSON-API path: credential resolution → usage fetch →
// normalization. Every failure is converted into an envelope; nothing
// escapes before one is printed.
func fetchPipeline(ctx context.Context, spec providers.Spec, tracer trace.Tracer) (core.Envelope, error) {
	cred, err := spec.ResolveCredential()
	if err != nil {
		return core.Failure(err), err
	}

	raw, err := providers.NewFetcher(tracer).Fetch(ctx, spec, cred)
	if err != nil {
		return core.Failure(err), err
	}

	return core.Envelope{
		OK:      true,
		Usage:   raw,
		Summary: spec.Summarize(raw),
	}, nil
}

// agentPipeline is the agent-driven path: session identity → spawn agent →
// scrape its free-form status text.
func agentPipeline(ctx context.Context, runner *agent.Runner) (core.Envelope, error) {
	sessionID, err := config.EnsureSessionIdentity(config.SessionIdentityPath())
	if err != nil {
		return core.Failure(err), err
	}

	reply, err := runner.Run(ctx, sessionID)
	if err != nil {
		return core.Failure(err), err
	}

	if !runner.OK(reply) {
		err := core.Upstreamf(reply.Text, "agent status %q", reply.Status)
		return core.Failure(err), err
	}

	return core.Envelope{
		OK:    true,
		Usage: parsers.ParseStatus(reply.Text),
	}, nil
}

// emit pretty-prints the envelope to stdout and maps the pipeline error to
// the process exit code. Failures never write to stderr.
func emit(w io.Writer, env core.Envelope, err error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(env); encErr != nil {
		return &exitError{code: 1}
	}
	if err != nil {
		return &exitError{code: core.ExitCode(err)}
	}
	return nil
}

func newClaudeCommand(tracer trace.Tracer) *cobra.Command {
	return &cobra.Command{
		Use:   "claude",
		Short: "Report remaining Claude usage windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := fetchPipeline(cmd.Context(), providers.Claude(), tracer)
			return emit(os.Stdout, env, err)
		},
	}
}

func newCodexCommand(tracer trace.Tracer) *cobra.Command {
	return &cobra.Command{
		Use:   "codex",
		Short: "Report remaining Codex rate-limit windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := fetchPipeline(cmd.Context(), providers.Codex(), tracer)
			return emit(os.Stdout, env, err)
		},
	}
}

func newCodexAgentCommand(tracer trace.Tracer) *cobra.Command {
	return &cobra.Command{
		Use:   "codex-agent",
		Short: "Drive the local Codex agent and scrape its status report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := agentPipeline(cmd.Context(), agent.NewRunner(tracer))
			return emit(os.Stdout, env, err)
		},
	}
}
