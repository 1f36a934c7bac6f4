package cleanup

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/docs"
	"github.com/agentx-labs/initkit/internal/platform"
)

// ArchiveRel is the archive target relative to the repository root.
var ArchiveRel = filepath.Join("docs", "project")

// ArchiveOptions selects what Archive copies.
type ArchiveOptions struct {
	Docs      bool
	Blueprint bool
}

// Any reports whether anything is selected.
func (o ArchiveOptions) Any() bool {
	return o.Docs || o.Blueprint
}

// CopyAction reports one archived file.
type CopyAction struct {
	Op     string `json:"op"`
	Src    string `json:"src"`
	Dest   string `json:"dest"`
	Mode   string `json:"mode"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ArchiveResult reports an Archive run. A non-empty Errors list means the
// caller must not proceed to Cleanup.
type ArchiveResult struct {
	Op         string       `json:"op"`
	Mode       string       `json:"mode"`
	TargetRoot string       `json:"targetRoot"`
	Actions    []CopyAction `json:"actions"`
	Errors     []string     `json:"errors"`
}

// Archive copies the Stage A documents and/or the blueprint into
// docs/project under repoRoot.
func Archive(repoRoot, docsRoot, blueprintPath string, opts ArchiveOptions, apply bool) ArchiveResult {
	target := filepath.Join(repoRoot, ArchiveRel)
	res := ArchiveResult{Op: "archive", Mode: "dry-run", TargetRoot: target, Actions: []CopyAction{}, Errors: []string{}}
	if apply {
		res.Mode = "applied"
	}

	if opts.Docs {
		for _, doc := range docs.Documents() {
			src := filepath.Join(docsRoot, doc.File)
			action := copyFile(src, filepath.Join(target, doc.File), apply)
			res.Actions = append(res.Actions, action)
			switch action.Mode {
			case "skip":
				res.Errors = append(res.Errors, "Missing Stage A doc: "+display(repoRoot, src))
			case "failed":
				res.Errors = append(res.Errors, fmt.Sprintf("Failed to archive doc: %s (%s)", display(repoRoot, src), action.Error))
			}
		}
	}

	if opts.Blueprint {
		action := copyFile(blueprintPath, filepath.Join(target, "project-blueprint.json"), apply)
		res.Actions = append(res.Actions, action)
		switch action.Mode {
		case "skip":
			res.Errors = append(res.Errors, "Missing blueprint: "+display(repoRoot, blueprintPath))
		case "failed":
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to archive blueprint: %s (%s)", display(repoRoot, blueprintPath), action.Error))
		}
	}
	return res
}

func copyFile(src, dest string, apply bool) CopyAction {
	a := CopyAction{Op: "copy", Src: src, Dest: dest}
	if !platform.Exists(src) {
		a.Mode, a.Reason = "skip", "missing source"
		return a
	}
	if !apply {
		a.Mode = "dry-run"
		return a
	}
	if err := platform.CopyFile(src, dest); err != nil {
		a.Mode, a.Error = "failed", err.Error()
		return a
	}
	a.Mode = "applied"
	return a
}
