package integrations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/initkit/internal/logging"
	"github.com/agentx-labs/initkit/internal/platform"
)

// ScriptRel is the sync script location relative to the repo root.
var ScriptRel = filepath.Join(".ai", "scripts", "sync-skills.mjs")

// Sync modes beyond the scaffold ones.
const (
	ModeDryRun  = "dry-run"
	ModeApplied = "applied"
	ModeFailed  = "failed"
)

// SyncResult reports one wrapper-sync invocation.
type SyncResult struct {
	Op       string `json:"op"`
	Path     string `json:"path,omitempty"`
	Cmd      string `json:"cmd,omitempty"`
	Mode     string `json:"mode,omitempty"`
	ExitCode int    `json:"exitCode,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Failed reports whether the collaborator ran and exited non-zero.
func (r SyncResult) Failed() bool { return r.Mode == ModeFailed }

// Syncer copies skill wrappers for the given providers.
type Syncer interface {
	Sync(ctx context.Context, repoRoot, providers string, apply bool) SyncResult
}

// Exec runs the sync script as a subprocess in the repo root.
type Exec struct {
	// Command is the interpreter, "node" when empty.
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
}

// NewExec returns an Exec that inherits the process stdio.
func NewExec(command string, logger *slog.Logger) *Exec {
	return &Exec{Command: command, Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}
}

// Args returns the script arguments for the given providers.
func Args(providers string) []string {
	if strings.TrimSpace(providers) == "" {
		providers = Both
	}
	return []string{filepath.ToSlash(ScriptRel), "--scope", "current", "--providers", providers, "--mode", "reset", "--yes"}
}

// Sync implements Syncer.
func (e *Exec) Sync(ctx context.Context, repoRoot, providers string, apply bool) SyncResult {
	script := filepath.Join(repoRoot, ScriptRel)
	if !platform.Exists(script) {
		return SyncResult{Op: "skip", Path: script, Reason: "sync-skills.mjs not found"}
	}

	name := e.Command
	if name == "" {
		name = "node"
	}
	args := Args(providers)
	res := SyncResult{Op: "run", Cmd: name + " " + strings.Join(args, " ")}
	if !apply {
		res.Mode = ModeDryRun
		return res
	}

	e.logger().Info("running wrapper sync", "cmd", res.Cmd, "dir", repoRoot)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = repoRoot
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		res.Mode = ModeFailed
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Reason = err.Error()
		}
		e.logger().Warn("wrapper sync failed", "cmd", res.Cmd, "exitCode", res.ExitCode, "error", err)
		return res
	}
	res.Mode = ModeApplied
	return res
}

func (e *Exec) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}
