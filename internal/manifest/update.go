package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/packs"
	"github.com/agentx-labs/initkit/internal/platform"
)

// Result reports the outcome of Update.
type Result struct {
	Op              string   `json:"op"`
	Path            string   `json:"path"`
	Mode            string   `json:"mode"`
	IncludePrefixes []string `json:"includePrefixes"`
	Warnings        []string `json:"warnings"`
	Notes           []string `json:"notes,omitempty"`
}

// Update merges bp's packs and exclude lists into the manifest under
// repoRoot. includePrefixes is always recomputed; exclude lists are
// replaced only when the blueprint sets them.
func Update(repoRoot string, bp *blueprint.Blueprint, apply bool) (Result, error) {
	path := filepath.Join(repoRoot, RelPath)
	m, notes, err := Read(path)
	if err != nil {
		return Result{}, err
	}

	res := Result{Op: "write", Path: path, Warnings: []string{}, Notes: notes}

	var include []string
	for _, p := range packs.Normalize(bp.Packs()) {
		prefix, ok := packs.Prefix(p)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown pack %q (no prefix mapping). Ignoring for manifest.includePrefixes.", p))
			continue
		}
		include = append(include, prefix)
	}
	m.IncludePrefixes = uniq(include)

	if list, ok := bp.ExcludePrefixes(); ok {
		m.ExcludePrefixes = uniq(list)
	}
	if list, ok := bp.ExcludeSkillNames(); ok {
		m.ExcludeSkillNames = uniq(list)
	}
	res.IncludePrefixes = m.IncludePrefixes

	if !apply {
		res.Mode = "dry-run"
		return res, nil
	}
	if err := platform.WriteJSONAtomic(path, m); err != nil {
		return Result{}, fmt.Errorf("writing manifest: %w", err)
	}
	res.Mode = "applied"
	return res, nil
}

func uniq(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := []string{}
	for _, v := range list {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
