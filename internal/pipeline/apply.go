package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/cleanup"
	"github.com/agentx-labs/initkit/internal/configgen"
	"github.com/agentx-labs/initkit/internal/docs"
	"github.com/agentx-labs/initkit/internal/integrations"
	"github.com/agentx-labs/initkit/internal/manifest"
	"github.com/agentx-labs/initkit/internal/packs"
	"github.com/agentx-labs/initkit/internal/scaffold"
	"github.com/agentx-labs/initkit/internal/state"
)

// ScaffoldResult is the directory plan for the blueprint.
type ScaffoldResult struct {
	OK      bool          `json:"ok"`
	Summary string        `json:"summary"`
	Plan    []scaffold.Op `json:"plan"`
}

// Scaffold plans, and with apply creates, the blueprint's directory
// layout. An invalid blueprint is refused.
func (p *Pipeline) Scaffold(apply bool) (ScaffoldResult, error) {
	bp, err := p.validBlueprint("Blueprint is not valid; refusing to scaffold.")
	if err != nil {
		return ScaffoldResult{}, err
	}
	plan, err := scaffold.Plan(p.env.RepoRoot, bp, apply)
	if err != nil {
		return ScaffoldResult{}, err
	}
	res := ScaffoldResult{OK: true, Plan: plan}
	if apply {
		res.Summary = "[ok] Scaffold applied under repo root: " + p.env.RepoRoot
	} else {
		res.Summary = "[plan] Scaffold dry-run under repo root: " + p.env.RepoRoot
	}
	return res, nil
}

func (p *Pipeline) validBlueprint(refusal string) (*blueprint.Blueprint, error) {
	bp, err := p.loadBlueprint()
	if err != nil {
		return nil, err
	}
	if v := blueprint.Validate(bp); !v.OK {
		return nil, refuse("%s", refusal)
	}
	return bp, nil
}

// ArchiveFlags selects what to archive before cleanup.
type ArchiveFlags struct {
	All       bool
	Docs      bool
	Blueprint bool
}

// Options resolves the flags into archive options.
func (f ArchiveFlags) Options() cleanup.ArchiveOptions {
	return cleanup.ArchiveOptions{Docs: f.All || f.Docs, Blueprint: f.All || f.Blueprint}
}

// ApplyOptions are the apply command's switches.
type ApplyOptions struct {
	Providers        string
	RequireStageA    bool
	SkipConfigs      bool
	SkipAgentBuilder bool
	CleanupInit      bool
	Archive          ArchiveFlags
	IUnderstand      bool
	ForceReadme      bool
}

// ApplyResult collects every step of apply.
type ApplyResult struct {
	OK                bool                    `json:"ok"`
	Blueprint         string                  `json:"blueprint"`
	DocsRoot          string                  `json:"docsRoot"`
	StageA            docs.Result             `json:"stage-a"`
	Scaffold          []scaffold.Op           `json:"scaffold"`
	Configs           []configgen.FileResult  `json:"configs"`
	Readme            scaffold.Op             `json:"readme"`
	Manifest          manifest.Result         `json:"manifest"`
	Archive           *cleanup.ArchiveResult  `json:"archive"`
	PruneAgentBuilder *cleanup.Result         `json:"pruneAgentBuilder"`
	Sync              integrations.SyncResult `json:"sync"`
	Cleanup           *cleanup.Result         `json:"cleanup"`
	Warnings          []string                `json:"warnings"`
	Notices           []string                `json:"notices,omitempty"`
}

// Apply runs Stage C end to end: scaffold, configs, README, manifest,
// optional agent-builder prune, wrapper sync, state update, and optional
// archive and cleanup of the bootstrap directory. Guards are checked
// before anything is written.
func (p *Pipeline) Apply(ctx context.Context, opts ApplyOptions) (ApplyResult, error) {
	res := ApplyResult{Configs: []configgen.FileResult{}, Warnings: []string{}}
	if opts.CleanupInit {
		if err := acknowledge("--cleanup-init", opts.IUnderstand); err != nil {
			return res, err
		}
	}
	if opts.SkipAgentBuilder {
		if err := acknowledge("--skip-agent-builder", opts.IUnderstand); err != nil {
			return res, err
		}
	}
	archive := opts.Archive.Options()
	if !opts.CleanupInit && archive.Any() {
		res.Warnings = append(res.Warnings, "Archive flags are ignored without --cleanup-init")
	}
	providers, err := p.providers(opts.Providers)
	if err != nil {
		return res, err
	}

	bp, err := p.validBlueprint("Blueprint validation failed. Fix errors and re-run.")
	if err != nil {
		return res, err
	}

	docsRes, err := docs.Check(p.env.DocsRoot, docs.Options{Base: p.env.RepoRoot})
	if err != nil {
		return res, err
	}
	if opts.RequireStageA && (!docsRes.OK || len(docsRes.Warnings) > 0) {
		return res, refuse("Stage A docs check failed in strict mode. Fix docs and re-run.")
	}
	res.StageA = docsRes
	res.Blueprint = p.Rel(p.env.BlueprintPath)
	res.DocsRoot = p.Rel(p.env.DocsRoot)

	if opts.CleanupInit {
		pre, err := cleanup.Cleanup(p.env.RepoRoot, p.env.BootstrapDir, false)
		if err != nil {
			return res, err
		}
		if pre.Op == "refuse" {
			return res, refuse("cleanup-init refused: %s", pre.Reason)
		}
	}

	rec, err := packs.Recommend(bp.Doc())
	if err != nil {
		return res, fmt.Errorf("evaluating pack rules: %w", err)
	}
	if missing := packs.Missing(rec, packs.Normalize(bp.Packs())); len(missing) > 0 {
		res.Warnings = append(res.Warnings,
			"Blueprint.skills.packs is missing recommended packs: "+strings.Join(missing, ", "),
			fmt.Sprintf("Run: suggest-packs --blueprint %s --write  (or edit blueprint.skills.packs manually)", res.Blueprint))
	}

	if res.Scaffold, err = scaffold.Plan(p.env.RepoRoot, bp, true); err != nil {
		return res, err
	}

	gen := configgen.New(p.env.Templates)
	if !opts.SkipConfigs {
		configs, err := gen.Generate(p.env.RepoRoot, bp, true)
		if err != nil {
			return res, err
		}
		res.Configs = append(res.Configs, configs...)
	}
	if res.Readme, err = gen.GenerateReadme(p.env.RepoRoot, bp, true, opts.ForceReadme); err != nil {
		return res, err
	}

	if res.Manifest, err = manifest.Update(p.env.RepoRoot, bp, true); err != nil {
		return res, err
	}
	res.Warnings = append(res.Warnings, res.Manifest.Warnings...)

	if opts.SkipAgentBuilder {
		pr := cleanup.PruneAgentBuilder(p.env.RepoRoot, true)
		res.PruneAgentBuilder = &pr
		if pr.Mode == "failed" {
			return res, fmt.Errorf("failed to prune agent workflow: %s", pr.Error)
		}
	}

	res.Sync = p.env.Syncer.Sync(ctx, p.env.RepoRoot, providers, true)
	if res.Sync.Failed() {
		return res, fmt.Errorf("sync-skills.mjs failed with exit code %d", res.Sync.ExitCode)
	}

	s, _, err := p.loadState()
	if err != nil {
		return res, err
	}
	if s != nil {
		s.Scaffold.ScaffoldApplied = true
		s.Scaffold.ConfigsGenerated = !opts.SkipConfigs
		s.Scaffold.ManifestUpdated = true
		s.Scaffold.WrappersSynced = res.Sync.Mode == integrations.ModeApplied
		state.AppendHistory(s, "stage_c_applied", "Stage C apply completed")
		if err := p.saveState(s); err != nil {
			return res, err
		}
		res.Notices = append(res.Notices, "State updated: stage-c.* = true")
	}

	if opts.CleanupInit {
		if archive.Any() {
			ar := cleanup.Archive(p.env.RepoRoot, p.env.DocsRoot, p.env.BlueprintPath, archive, true)
			res.Archive = &ar
			if len(ar.Errors) > 0 {
				return res, fmt.Errorf("archive failed:\n- %s", strings.Join(ar.Errors, "\n- "))
			}
		}
		cr, err := cleanup.Cleanup(p.env.RepoRoot, p.env.BootstrapDir, true)
		if err != nil {
			return res, err
		}
		res.Cleanup = &cr
		if cr.Mode == "partial" {
			res.Warnings = append(res.Warnings, "cleanup-init partially completed: "+cr.Note)
		}
	}

	res.OK = true
	return res, nil
}

func acknowledge(what string, acknowledged bool) error {
	if err := cleanup.RequireAcknowledgement(what, acknowledged); err != nil {
		return &Refusal{Kind: err, Msg: what + " requires --i-understand"}
	}
	return nil
}

// CleanupOptions are the cleanup-init command's switches.
type CleanupOptions struct {
	Apply       bool
	IUnderstand bool
	Archive     ArchiveFlags
}

// CleanupResult reports cleanup-init.
type CleanupResult struct {
	OK      bool                   `json:"ok"`
	Archive *cleanup.ArchiveResult `json:"archive"`
	Result  cleanup.Result         `json:"result"`
}

// CleanupInit archives the requested artifacts and removes the bootstrap
// directory. The acknowledgement and the provenance marker are both
// checked before anything is copied or removed.
func (p *Pipeline) CleanupInit(opts CleanupOptions) (CleanupResult, error) {
	if err := acknowledge("cleanup-init", opts.IUnderstand); err != nil {
		return CleanupResult{}, err
	}
	pre, err := cleanup.Cleanup(p.env.RepoRoot, p.env.BootstrapDir, false)
	if err != nil {
		return CleanupResult{}, err
	}
	if pre.Op == "skip" && opts.Apply {
		res := CleanupResult{Result: pre}
		if archive := opts.Archive.Options(); archive.Any() {
			ar := cleanup.Archive(p.env.RepoRoot, p.env.DocsRoot, p.env.BlueprintPath, archive, true)
			res.Archive = &ar
			if len(ar.Errors) > 0 {
				return res, fmt.Errorf("archive failed:\n- %s", strings.Join(ar.Errors, "\n- "))
			}
		}
		res.OK = true
		return res, nil
	}
	if pre.Op == "refuse" || pre.Op == "skip" || !opts.Apply {
		res := CleanupResult{OK: pre.Op != "refuse", Result: pre}
		if archive := opts.Archive.Options(); archive.Any() && pre.Op != "refuse" {
			ar := cleanup.Archive(p.env.RepoRoot, p.env.DocsRoot, p.env.BlueprintPath, archive, false)
			res.Archive = &ar
		}
		return res, nil
	}

	var res CleanupResult
	if archive := opts.Archive.Options(); archive.Any() {
		ar := cleanup.Archive(p.env.RepoRoot, p.env.DocsRoot, p.env.BlueprintPath, archive, true)
		res.Archive = &ar
		if len(ar.Errors) > 0 {
			return res, fmt.Errorf("archive failed:\n- %s", strings.Join(ar.Errors, "\n- "))
		}
	}
	r, err := cleanup.Cleanup(p.env.RepoRoot, p.env.BootstrapDir, true)
	if err != nil {
		return res, err
	}
	res.OK = true
	res.Result = r
	return res, nil
}

// PruneOptions are the prune-agent-builder command's switches.
type PruneOptions struct {
	Apply       bool
	IUnderstand bool
	SyncAfter   bool
	Providers   string
}

// PruneResult reports prune-agent-builder.
type PruneResult struct {
	OK    bool                     `json:"ok"`
	Prune cleanup.Result           `json:"prune"`
	Sync  *integrations.SyncResult `json:"sync"`

	// SyncPlanned is set on dry runs that would re-sync afterwards.
	SyncPlanned bool `json:"syncPlanned,omitempty"`
}

// PruneAgentBuilder removes the agent-builder workflow and, after a
// successful removal, re-syncs the wrappers.
func (p *Pipeline) PruneAgentBuilder(ctx context.Context, opts PruneOptions) (PruneResult, error) {
	if err := acknowledge("prune-agent-builder", opts.IUnderstand); err != nil {
		return PruneResult{}, err
	}
	providers, err := p.providers(opts.Providers)
	if err != nil {
		return PruneResult{}, err
	}
	res := PruneResult{OK: true}
	res.Prune = cleanup.PruneAgentBuilder(p.env.RepoRoot, opts.Apply)
	switch {
	case res.Prune.Op == "skip":
		res.Prune.Reason = "not present"
		return res, nil
	case res.Prune.Mode == "failed":
		res.OK = false
		return res, fmt.Errorf("failed to prune agent workflow: %s", res.Prune.Error)
	case !opts.Apply:
		res.SyncPlanned = opts.SyncAfter
		return res, nil
	}
	if opts.SyncAfter && res.Prune.Mode == "applied" {
		sr := p.env.Syncer.Sync(ctx, p.env.RepoRoot, providers, true)
		res.Sync = &sr
		if sr.Failed() {
			res.OK = false
			return res, fmt.Errorf("sync-skills.mjs failed with exit code %d", sr.ExitCode)
		}
	}
	return res, nil
}
