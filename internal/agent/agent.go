// Package agent drives one synchronous invocation of the local Codex agent
// process and extracts its final status reply from stdout.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/janekbaraniewski/usagectl/internal/core"
)

const (
	binaryEnv       = "CODEX_AGENT_BIN"
	okStatusEnv     = "CODEX_AGENT_OK_STATUS"
	defaultBinary   = "codex"
	defaultOKStatus = "ok"

	runTimeout = 30 * time.Second

	statusPrompt = "Report your current status."
)

// Reply is the agent's final JSON line: a status discriminator plus the
// free-form status text to scrape.
type Reply struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}

// Runner spawns the agent binary and blocks on it. The success status token
// is configurable because the agent's wording is not under our control.
type Runner struct {
	Binary   string
	OKStatus string
	tracer   trace.Tracer
}

func NewRunner(tracer trace.Tracer) *Runner {
	binary := strings.TrimSpace(os.Getenv(binaryEnv))
	if binary == "" {
		binary = defaultBinary
	}
	okStatus := strings.TrimSpace(os.Getenv(okStatusEnv))
	if okStatus == "" {
		okStatus = defaultOKStatus
	}
	return &Runner{Binary: binary, OKStatus: okStatus, tracer: tracer}
}

// Run invokes the agent once for the given session and returns its reply.
// The agent's own concurrency is opaque; we only wait for exit.
func (r *Runner) Run(ctx context.Context, sessionID string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "agent.run",
		trace.WithAttributes(attribute.String("agent.binary", r.Binary)))
	defer span.End()

	cmd := exec.CommandContext(ctx, r.Binary, "exec", "--session", sessionID, "--json", statusPrompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		span.RecordError(err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Reply{}, core.Transportf("agent %s: %v: %s", r.Binary, err, msg)
		}
		return Reply{}, core.Transportf("agent %s: %v", r.Binary, err)
	}

	return lastReply(stdout.String())
}

// OK reports whether the agent's status string counts as success.
func (r *Runner) OK(reply Reply) bool {
	return strings.EqualFold(strings.TrimSpace(reply.Status), r.OKStatus)
}

// lastReply scans stdout bottom-up for the final JSON reply object, skipping
// interleaved progress lines.
func lastReply(out string) (Reply, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var reply Reply
		if err := json.Unmarshal([]byte(line), &reply); err != nil {
			continue
		}
		if reply.Status != "" || reply.Text != "" {
			return reply, nil
		}
	}
	return Reply{}, core.Decodef("agent produced no status reply")
}
