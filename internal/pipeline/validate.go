package pipeline

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/docs"
	"github.com/agentx-labs/initkit/internal/packs"
	"github.com/agentx-labs/initkit/internal/state"
)

// ValidateResult reports blueprint validation.
type ValidateResult struct {
	blueprint.Result
	Blueprint string   `json:"blueprint"`
	Summary   string   `json:"summary"`
	Notices   []string `json:"notices,omitempty"`
}

// Validate checks the blueprint. When it is valid and the pipeline is at
// Stage B, the blueprint is marked drafted and validated.
func (p *Pipeline) Validate() (ValidateResult, error) {
	bp, err := p.loadBlueprint()
	if err != nil {
		return ValidateResult{}, err
	}
	v := blueprint.Validate(bp)
	rel := p.Rel(p.env.BlueprintPath)
	res := ValidateResult{Result: v, Blueprint: rel}
	if !v.OK {
		res.Summary = "[error] Blueprint validation failed: " + rel
		return res, nil
	}
	res.Summary = "[ok] Blueprint is valid: " + rel

	s, _, err := p.loadState()
	if err != nil {
		return res, err
	}
	if s != nil && s.Stage == state.B {
		s.Blueprint.Drafted = true
		s.Blueprint.Validated = true
		state.AppendHistory(s, "stage_b_validated", "Stage B blueprint validated")
		if err := p.saveState(s); err != nil {
			return res, err
		}
		res.Notices = append(res.Notices, "State updated: stage-b.validated = true")
	}
	return res, nil
}

// CheckDocsResult reports the Stage A document check.
type CheckDocsResult struct {
	docs.Result
	DocsRoot string   `json:"docsRoot"`
	Summary  string   `json:"summary"`
	Notices  []string `json:"notices,omitempty"`
}

// CheckDocs validates the Stage A documents. Strict mode also fails on
// warnings. When the check passes at Stage A, the docs are marked
// validated and the written documents recorded.
func (p *Pipeline) CheckDocs(strict bool) (CheckDocsResult, error) {
	r, err := docs.Check(p.env.DocsRoot, docs.Options{Strict: strict, Base: p.env.RepoRoot})
	if err != nil {
		return CheckDocsResult{}, err
	}
	rel := p.Rel(p.env.DocsRoot)
	res := CheckDocsResult{Result: r, DocsRoot: rel}
	if !r.OK {
		res.Summary = "[error] Stage A docs check failed: " + rel
		return res, nil
	}
	res.Summary = "[ok] Stage A docs check passed: " + rel

	s, _, err := p.loadState()
	if err != nil {
		return res, err
	}
	if s != nil && s.Stage == state.A {
		s.Requirements.Validated = true
		s.Requirements.DocsWritten = docs.DocsWritten(p.env.DocsRoot)
		state.AppendHistory(s, "stage_a_validated", "Stage A docs validated")
		if err := p.saveState(s); err != nil {
			return res, err
		}
		res.Notices = append(res.Notices, "State updated: stage-a.validated = true")
	}
	return res, nil
}

// Wrote records a safe-add of packs into the blueprint.
type Wrote struct {
	Path  string   `json:"path"`
	Packs []string `json:"packs"`
}

// SuggestResult compares the blueprint's packs with the recommended set.
type SuggestResult struct {
	OK          bool     `json:"ok"`
	Recommended []string `json:"recommended"`
	Current     []string `json:"current"`
	Missing     []string `json:"missing"`
	Extra       []string `json:"extra"`
	Warnings    []string `json:"warnings"`
	Errors      []string `json:"errors"`
	Summary     string   `json:"summary"`
	Wrote       *Wrote   `json:"wrote,omitempty"`
	Notices     []string `json:"notices,omitempty"`
}

// SuggestPacks reports recommended, current, missing and extra packs.
// With write, missing recommendations are added to the blueprint; this is
// refused when the blueprint is invalid. At Stage B the review is recorded.
func (p *Pipeline) SuggestPacks(write bool) (SuggestResult, error) {
	bp, err := p.loadBlueprint()
	if err != nil {
		return SuggestResult{}, err
	}
	v := blueprint.Validate(bp)
	rec, err := packs.Recommend(bp.Doc())
	if err != nil {
		return SuggestResult{}, fmt.Errorf("evaluating pack rules: %w", err)
	}
	current := packs.Normalize(bp.Packs())
	res := SuggestResult{
		OK:          v.OK,
		Recommended: rec,
		Current:     current,
		Missing:     packs.Missing(rec, current),
		Extra:       packs.Extra(rec, current),
		Warnings:    []string{},
		Errors:      v.Errors,
	}
	for _, pk := range rec {
		if c := packs.CheckInstall(p.env.RepoRoot, pk); !c.Installed {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Recommended pack %q is not installed (%s).", c.Pack, c.Reason))
		}
	}
	res.Summary = fmt.Sprintf("[info] Packs: current=%s | recommended=%s", joinOr(current, "(none)"), strings.Join(rec, ", "))

	if write {
		if !v.OK {
			return res, refuse("Cannot write packs: blueprint validation failed.")
		}
		next := packs.Normalize(append(append([]string{}, current...), res.Missing...))
		if err := bp.SetPacks(next); err != nil {
			return res, err
		}
		if err := bp.Save(p.env.BlueprintPath); err != nil {
			return res, err
		}
		res.Wrote = &Wrote{Path: p.Rel(p.env.BlueprintPath), Packs: next}
		res.Summary += "\n[write] Added missing recommended packs into blueprint.skills.packs"
	}

	s, _, err := p.loadState()
	if err != nil {
		return res, err
	}
	if s != nil && s.Stage == state.B && v.OK && !s.Blueprint.PacksReviewed {
		s.Blueprint.PacksReviewed = true
		state.AppendHistory(s, "stage_b_packs_reviewed", "Stage B skill packs reviewed")
		if err := p.saveState(s); err != nil {
			return res, err
		}
		res.Notices = append(res.Notices, "State updated: stage-b.packsReviewed = true")
	}
	return res, nil
}

func joinOr(list []string, empty string) string {
	if len(list) == 0 {
		return empty
	}
	return strings.Join(list, ", ")
}
