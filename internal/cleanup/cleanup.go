package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentx-labs/initkit/internal/platform"
	"github.com/agentx-labs/initkit/internal/scaffold"
)

// ErrAcknowledgementRequired is returned when a destructive command runs
// without --i-understand.
var ErrAcknowledgementRequired = errors.New("acknowledgement required")

// RequireAcknowledgement returns ErrAcknowledgementRequired naming what
// needs --i-understand when acknowledged is false.
func RequireAcknowledgement(what string, acknowledged bool) error {
	if acknowledged {
		return nil
	}
	return fmt.Errorf("%w: %s requires --i-understand", ErrAcknowledgementRequired, what)
}

var (
	timeNow   = time.Now
	removeAll = os.RemoveAll
)

// Result reports a single removal.
type Result struct {
	Op     string `json:"op"`
	Path   string `json:"path"`
	Mode   string `json:"mode,omitempty"`
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty"`
	Error  string `json:"error,omitempty"`
}

// TrashName returns the name the bootstrap directory is renamed to before
// deletion.
func TrashName(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return ".init-trash-" + strings.NewReplacer(":", "-", ".", "-").Replace(ts)
}

// Cleanup removes bootstrapDir from repoRoot. The directory is renamed to
// a trash name first, then deleted; if deletion fails the renamed
// directory is left in place and the result is partial.
func Cleanup(repoRoot, bootstrapDir string, apply bool) (Result, error) {
	rel := display(repoRoot, bootstrapDir)
	if !platform.IsDir(bootstrapDir) {
		return Result{Op: "skip", Path: bootstrapDir, Reason: rel + "/ not present"}, nil
	}
	if !platform.Exists(filepath.Join(bootstrapDir, scaffold.MarkerFile)) {
		return Result{Op: "refuse", Path: bootstrapDir, Reason: "missing " + rel + "/" + scaffold.MarkerFile + " marker"}, nil
	}

	trash := filepath.Join(repoRoot, TrashName(timeNow()))
	if !apply {
		return Result{Op: "rm", Path: bootstrapDir, Mode: "dry-run", Note: fmt.Sprintf("will move to %s then delete", filepath.Base(trash))}, nil
	}

	if err := os.Rename(bootstrapDir, trash); err != nil {
		return Result{}, fmt.Errorf("moving %s to %s: %w", bootstrapDir, trash, err)
	}
	if err := removeAll(trash); err != nil {
		return Result{
			Op:   "rm",
			Path: bootstrapDir,
			Mode: "partial",
			Note: fmt.Sprintf("renamed to %s but could not delete automatically: %v", filepath.Base(trash), err),
		}, nil
	}
	return Result{Op: "rm", Path: bootstrapDir, Mode: "applied"}, nil
}

// AgentBuilderRel is the agent-builder workflow directory relative to the
// repository root.
var AgentBuilderRel = filepath.Join(".ai", "skills", "workflows", "agent")

// AgentBuilderPresent reports whether the agent-builder workflow exists.
func AgentBuilderPresent(repoRoot string) bool {
	return platform.Exists(filepath.Join(repoRoot, AgentBuilderRel))
}

// PruneAgentBuilder removes the agent-builder workflow. Removal failures
// are reported in the result with mode "failed".
func PruneAgentBuilder(repoRoot string, apply bool) Result {
	dir := filepath.Join(repoRoot, AgentBuilderRel)
	if !platform.Exists(dir) {
		return Result{Op: "skip", Path: dir, Reason: "agent workflow not present"}
	}
	if !apply {
		return Result{Op: "rm", Path: dir, Mode: "dry-run"}
	}
	if err := removeAll(dir); err != nil {
		return Result{Op: "rm", Path: dir, Mode: "failed", Error: err.Error()}
	}
	return Result{Op: "rm", Path: dir, Mode: "applied"}
}

func display(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
