package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/platform"
)

// Mode describes what happened to a planned operation.
type Mode string

const (
	ModeDryRun  Mode = "dry-run"
	ModeApplied Mode = "applied"
	ModeSkip    Mode = "skip"
)

// Op is one planned filesystem operation.
type Op struct {
	Op     string `json:"op"`
	Path   string `json:"path"`
	Mode   Mode   `json:"mode"`
	Reason string `json:"reason,omitempty"`
}

func modeFor(apply bool) Mode {
	if apply {
		return ModeApplied
	}
	return ModeDryRun
}

func ensureDir(path string, apply bool) (Op, error) {
	if platform.Exists(path) {
		return Op{Op: "mkdir", Path: path, Mode: ModeSkip, Reason: "exists"}, nil
	}
	if apply {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return Op{}, fmt.Errorf("creating directory %s: %w", path, err)
		}
	}
	return Op{Op: "mkdir", Path: path, Mode: modeFor(apply)}, nil
}

func writeFileIfMissing(path string, content []byte, apply bool) (Op, error) {
	if platform.Exists(path) {
		return Op{Op: "write", Path: path, Mode: ModeSkip, Reason: "exists"}, nil
	}
	if apply {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return Op{}, fmt.Errorf("creating directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return Op{}, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return Op{Op: "write", Path: path, Mode: modeFor(apply)}, nil
}

// planner accumulates ops and stops at the first error.
type planner struct {
	ops   []Op
	err   error
	apply bool
}

func (p *planner) dir(path string) {
	if p.err != nil {
		return
	}
	op, err := ensureDir(path, p.apply)
	if err != nil {
		p.err = err
		return
	}
	p.ops = append(p.ops, op)
}

func (p *planner) file(path string, content []byte) {
	if p.err != nil {
		return
	}
	op, err := writeFileIfMissing(path, content, p.apply)
	if err != nil {
		p.err = err
		return
	}
	p.ops = append(p.ops, op)
}

func (p *planner) skip(path, reason string) {
	if p.err != nil {
		return
	}
	p.ops = append(p.ops, Op{Op: "write", Path: path, Mode: ModeSkip, Reason: reason})
}
