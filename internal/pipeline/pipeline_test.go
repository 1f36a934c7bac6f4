package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/initkit/internal/cleanup"
	"github.com/agentx-labs/initkit/internal/integrations"
	"github.com/agentx-labs/initkit/internal/manifest"
	"github.com/agentx-labs/initkit/internal/scaffold"
	"github.com/agentx-labs/initkit/internal/state"
)

const goBlueprint = `{
  "version": 1,
  "project": {"name": "demo", "description": "d"},
  "repo": {"layout": "single", "language": "go"},
  "skills": {"packs": ["workflows"]}
}`

func TestStart_CreatesStateOnce(t *testing.T) {
	p, root, _ := newPipeline(t)

	first, err := p.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if first.Existing {
		t.Fatal("first start reported existing state")
	}
	if len(first.Created) == 0 {
		t.Fatal("first start created no templates")
	}
	assertExists(t, filepath.Join(root, "init", state.FileName))
	assertExists(t, filepath.Join(root, "init", scaffold.MarkerFile))
	assertExists(t, filepath.Join(root, "init", "stage-a-docs", "requirements.md"))

	s := loadState(t, root)
	if s.Stage != state.A || len(s.History) != 1 || s.History[0].Event != "init_started" {
		t.Fatalf("initial state = stage %s history %+v", s.Stage, s.History)
	}

	second, err := p.Start()
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if !second.Existing || len(second.Created) != 0 {
		t.Fatalf("second start = %+v, want existing with nothing created", second)
	}
	if got := loadState(t, root); len(got.History) != 1 {
		t.Fatalf("second start changed history: %+v", got.History)
	}
}

func TestStatus_NoState(t *testing.T) {
	p, _, _ := newPipeline(t)
	res, err := p.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if res.Progress != nil {
		t.Fatalf("Progress = %+v, want nil", res.Progress)
	}
}

func TestAdvance_NoState(t *testing.T) {
	p, _, _ := newPipeline(t)
	if _, err := p.Advance(); !errors.Is(err, ErrNoState) {
		t.Fatalf("Advance error = %v, want ErrNoState", err)
	}
}

func TestAdvance_GateNotMet(t *testing.T) {
	p, _, _ := newPipeline(t)
	mustStart(t, p)

	_, err := p.Advance()
	if !errors.Is(err, ErrStageGate) || !errors.Is(err, state.ErrGateNotMet) {
		t.Fatalf("Advance error = %v, want stage gate", err)
	}
	if err.Error() != "Stage A docs not validated yet. Run check-docs first." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestApprove_WrongStage(t *testing.T) {
	p, root, _ := newPipeline(t)
	mustStart(t, p)

	_, err := p.Approve(state.B)
	if !errors.Is(err, ErrStageGate) || !errors.Is(err, state.ErrWrongStage) {
		t.Fatalf("Approve(B) error = %v, want wrong stage", err)
	}
	if got := loadState(t, root); got.Stage != state.A || got.Blueprint.UserApproved {
		t.Fatalf("state changed after refused approval: %+v", got)
	}
}

func TestCheckDocs_TemplatesFail(t *testing.T) {
	p, root, _ := newPipeline(t)
	mustStart(t, p)

	res, err := p.CheckDocs(false)
	if err != nil {
		t.Fatalf("CheckDocs: %v", err)
	}
	if res.OK {
		t.Fatal("seeded templates passed the docs check")
	}
	if !strings.HasPrefix(res.Summary, "[error] Stage A docs check failed") {
		t.Errorf("Summary = %q", res.Summary)
	}
	if loadState(t, root).Requirements.Validated {
		t.Fatal("failed check marked docs validated")
	}
}

func TestFullPipeline(t *testing.T) {
	p, root, syncer := newPipeline(t)
	mustStart(t, p)

	// Stage A
	writeGoodDocs(t, root)
	docsRes, err := p.CheckDocs(false)
	if err != nil || !docsRes.OK {
		t.Fatalf("CheckDocs = %+v, %v", docsRes, err)
	}
	if len(docsRes.Notices) != 1 {
		t.Errorf("Notices = %v, want one state update", docsRes.Notices)
	}
	s := loadState(t, root)
	if !s.Requirements.Validated || !s.Requirements.DocsWritten["riskQuestions"] {
		t.Fatalf("stage-a after check = %+v", s.Requirements)
	}

	adv, err := p.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if adv.Title != "Stage A -> B Checkpoint" || adv.Command != "approve --stage A" {
		t.Errorf("Advance = %+v", adv)
	}
	mustApprove(t, p, state.A, state.B)

	// Stage B
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)
	v, err := p.Validate()
	if err != nil || !v.OK {
		t.Fatalf("Validate = %+v, %v", v, err)
	}
	sug, err := p.SuggestPacks(false)
	if err != nil {
		t.Fatalf("SuggestPacks: %v", err)
	}
	if strings.Join(sug.Missing, ",") != "standards" {
		t.Errorf("Missing = %v, want [standards]", sug.Missing)
	}
	s = loadState(t, root)
	if !s.Blueprint.Drafted || !s.Blueprint.Validated || !s.Blueprint.PacksReviewed {
		t.Fatalf("stage-b = %+v", s.Blueprint)
	}
	mustApprove(t, p, state.B, state.C)

	// Stage C
	res, err := p.Apply(context.Background(), ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.OK || res.Sync.Mode != integrations.ModeApplied {
		t.Fatalf("Apply = %+v", res)
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != "both" {
		t.Errorf("sync calls = %v, want [both]", syncer.calls)
	}
	assertWarning(t, res.Warnings, "missing recommended packs: standards")
	assertExists(t, filepath.Join(root, "README.md"))
	assertExists(t, filepath.Join(root, "go.mod"))
	assertExists(t, filepath.Join(root, manifest.RelPath))

	s = loadState(t, root)
	c := s.Scaffold
	if !c.ScaffoldApplied || !c.ConfigsGenerated || !c.ManifestUpdated || !c.WrappersSynced {
		t.Fatalf("stage-c = %+v", c)
	}
	if last := s.History[len(s.History)-1]; last.Event != "stage_c_applied" {
		t.Errorf("last event = %q", last.Event)
	}

	mustApprove(t, p, state.C, state.Complete)
	adv, err = p.Advance()
	if err != nil || !adv.Complete {
		t.Fatalf("Advance at complete = %+v, %v", adv, err)
	}
}

func TestValidate_OutsideStageBLeavesState(t *testing.T) {
	p, root, _ := newPipeline(t)
	mustStart(t, p)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	res, err := p.Validate()
	if err != nil || !res.OK {
		t.Fatalf("Validate = %+v, %v", res, err)
	}
	if len(res.Notices) != 0 || loadState(t, root).Blueprint.Validated {
		t.Fatal("validate at stage A updated stage-b")
	}
}

func TestValidate_Invalid(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), `{"version": 1, "project": {}}`)

	res, err := p.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.OK || len(res.Errors) == 0 {
		t.Fatalf("Validate = %+v, want errors", res)
	}
	if !strings.HasPrefix(res.Summary, "[error] Blueprint validation failed") {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestValidate_MissingBlueprint(t *testing.T) {
	p, _, _ := newPipeline(t)
	if _, err := p.Validate(); err == nil {
		t.Fatal("expected error for missing blueprint")
	}
}

func TestSuggestPacks_Write(t *testing.T) {
	p, root, _ := newPipeline(t)
	path := filepath.Join(root, "init", "project-blueprint.json")
	writeFile(t, path, goBlueprint)

	res, err := p.SuggestPacks(true)
	if err != nil {
		t.Fatalf("SuggestPacks: %v", err)
	}
	if res.Wrote == nil || strings.Join(res.Wrote.Packs, ",") != "workflows,standards" {
		t.Fatalf("Wrote = %+v", res.Wrote)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"standards"`) {
		t.Fatalf("blueprint not updated:\n%s", data)
	}
}

func TestSuggestPacks_WriteRefusedWhenInvalid(t *testing.T) {
	p, root, _ := newPipeline(t)
	path := filepath.Join(root, "init", "project-blueprint.json")
	writeFile(t, path, `{"version": 1}`)

	_, err := p.SuggestPacks(true)
	if !errors.Is(err, ErrRefused) {
		t.Fatalf("error = %v, want ErrRefused", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"version": 1}` {
		t.Fatalf("blueprint rewritten: %s", data)
	}
}

func TestScaffold_RefusesInvalid(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), `{"version": 0}`)
	if _, err := p.Scaffold(false); !errors.Is(err, ErrRefused) {
		t.Fatalf("error = %v, want ErrRefused", err)
	}
}

func TestScaffold_ApplyTwiceSkips(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	if _, err := p.Scaffold(true); err != nil {
		t.Fatalf("first Scaffold: %v", err)
	}
	res, err := p.Scaffold(true)
	if err != nil {
		t.Fatalf("second Scaffold: %v", err)
	}
	for _, op := range res.Plan {
		if op.Mode != scaffold.ModeSkip {
			t.Errorf("second run op %+v, want skip", op)
		}
	}
}

func TestApply_GuardsBeforeWrites(t *testing.T) {
	cases := []struct {
		name string
		opts ApplyOptions
	}{
		{"cleanup", ApplyOptions{CleanupInit: true}},
		{"skip agent builder", ApplyOptions{SkipAgentBuilder: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, root, syncer := newPipeline(t)
			writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

			_, err := p.Apply(context.Background(), tc.opts)
			if !errors.Is(err, cleanup.ErrAcknowledgementRequired) {
				t.Fatalf("error = %v, want acknowledgement required", err)
			}
			if !strings.HasSuffix(err.Error(), "requires --i-understand") {
				t.Errorf("message = %q", err.Error())
			}
			assertNotExists(t, filepath.Join(root, "README.md"))
			if len(syncer.calls) != 0 {
				t.Fatal("syncer ran despite refusal")
			}
		})
	}
}

func TestApply_ArchiveFlagsIgnoredWarning(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	res, err := p.Apply(context.Background(), ApplyOptions{Archive: ArchiveFlags{All: true}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertWarning(t, res.Warnings, "Archive flags are ignored without --cleanup-init")
	if res.Archive != nil || res.Cleanup != nil {
		t.Fatal("archive or cleanup ran without --cleanup-init")
	}
}

func TestApply_RequireStageA(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	_, err := p.Apply(context.Background(), ApplyOptions{RequireStageA: true})
	if !errors.Is(err, ErrRefused) {
		t.Fatalf("error = %v, want ErrRefused", err)
	}
	assertNotExists(t, filepath.Join(root, "README.md"))
}

func TestApply_SyncFailureIsFatal(t *testing.T) {
	p, root, syncer := newPipeline(t)
	mustStart(t, p)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)
	syncer.result = integrations.SyncResult{Op: "run", Mode: integrations.ModeFailed, ExitCode: 2}

	_, err := p.Apply(context.Background(), ApplyOptions{})
	if err == nil || !strings.Contains(err.Error(), "exit code 2") {
		t.Fatalf("error = %v, want exit code 2", err)
	}
	s := loadState(t, root)
	if s.Scaffold.ScaffoldApplied || s.Scaffold.WrappersSynced {
		t.Fatalf("state updated after failed sync: %+v", s.Scaffold)
	}
}

func TestApply_SkippedSyncLeavesWrappersUnsynced(t *testing.T) {
	p, root, syncer := newPipeline(t)
	mustStart(t, p)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)
	syncer.result = integrations.SyncResult{Op: "skip", Reason: "sync-skills.mjs not found"}

	res, err := p.Apply(context.Background(), ApplyOptions{SkipConfigs: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"configs":[]`) {
		t.Errorf("skipped configs should encode as an empty list: %s", out)
	}
	s := loadState(t, root)
	if !s.Scaffold.ScaffoldApplied || s.Scaffold.WrappersSynced || s.Scaffold.ConfigsGenerated {
		t.Fatalf("stage-c = %+v", s.Scaffold)
	}
	assertNotExists(t, filepath.Join(root, "go.mod"))
}

func TestApply_InvalidProviders(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)
	if _, err := p.Apply(context.Background(), ApplyOptions{Providers: "copilot"}); !errors.Is(err, ErrRefused) {
		t.Fatalf("error = %v, want ErrRefused", err)
	}
}

func TestApply_CleanupWithArchive(t *testing.T) {
	p, root, _ := newPipeline(t)
	mustStart(t, p)
	writeGoodDocs(t, root)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	res, err := p.Apply(context.Background(), ApplyOptions{
		CleanupInit: true,
		IUnderstand: true,
		Archive:     ArchiveFlags{All: true},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Cleanup == nil || res.Cleanup.Mode != "applied" {
		t.Fatalf("Cleanup = %+v", res.Cleanup)
	}
	assertNotExists(t, filepath.Join(root, "init"))
	assertExists(t, filepath.Join(root, cleanup.ArchiveRel, "requirements.md"))
	assertExists(t, filepath.Join(root, cleanup.ArchiveRel, "project-blueprint.json"))
}

func TestApply_CleanupRefusedWithoutMarker(t *testing.T) {
	p, root, syncer := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	_, err := p.Apply(context.Background(), ApplyOptions{CleanupInit: true, IUnderstand: true})
	if !errors.Is(err, ErrRefused) {
		t.Fatalf("error = %v, want ErrRefused", err)
	}
	if len(syncer.calls) != 0 {
		t.Fatal("syncer ran despite refusal")
	}
	assertNotExists(t, filepath.Join(root, "README.md"))
}

func TestCleanupInit_RequiresAcknowledgement(t *testing.T) {
	p, _, _ := newPipeline(t)
	_, err := p.CleanupInit(CleanupOptions{Apply: true})
	if !errors.Is(err, cleanup.ErrAcknowledgementRequired) {
		t.Fatalf("error = %v, want acknowledgement required", err)
	}
	if err.Error() != "cleanup-init requires --i-understand" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCleanupInit_RefusesWithoutMarker(t *testing.T) {
	p, root, _ := newPipeline(t)
	writeFile(t, filepath.Join(root, "init", "project-blueprint.json"), goBlueprint)

	res, err := p.CleanupInit(CleanupOptions{Apply: true, IUnderstand: true, Archive: ArchiveFlags{Blueprint: true}})
	if err != nil {
		t.Fatalf("CleanupInit: %v", err)
	}
	if res.OK || res.Result.Op != "refuse" {
		t.Fatalf("result = %+v, want refuse", res)
	}
	assertExists(t, filepath.Join(root, "init", "project-blueprint.json"))
	assertNotExists(t, filepath.Join(root, cleanup.ArchiveRel))
}

func TestCleanupInit_DryRunThenApply(t *testing.T) {
	p, root, _ := newPipeline(t)
	mustStart(t, p)

	plan, err := p.CleanupInit(CleanupOptions{IUnderstand: true, Archive: ArchiveFlags{Docs: true}})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !plan.OK || plan.Result.Mode != "dry-run" || plan.Archive == nil || plan.Archive.Mode != "dry-run" {
		t.Fatalf("dry run = %+v", plan)
	}
	assertExists(t, filepath.Join(root, "init"))
	assertNotExists(t, filepath.Join(root, cleanup.ArchiveRel))

	res, err := p.CleanupInit(CleanupOptions{Apply: true, IUnderstand: true, Archive: ArchiveFlags{Docs: true}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.OK || res.Result.Mode != "applied" {
		t.Fatalf("apply = %+v", res)
	}
	assertNotExists(t, filepath.Join(root, "init"))
	assertExists(t, filepath.Join(root, cleanup.ArchiveRel, "domain-glossary.md"))
}

func TestCleanupInit_ArchivesWhenBootstrapDirGone(t *testing.T) {
	root := t.TempDir()
	docsRoot := filepath.Join(root, "requirements")
	p := New(Env{
		RepoRoot:      root,
		BootstrapDir:  filepath.Join(root, "init"),
		DocsRoot:      docsRoot,
		BlueprintPath: filepath.Join(root, "init", "project-blueprint.json"),
		Syncer:        &fakeSyncer{},
	})
	writeFile(t, filepath.Join(docsRoot, "requirements.md"), "# Requirements\n")

	res, err := p.CleanupInit(CleanupOptions{Apply: true, IUnderstand: true, Archive: ArchiveFlags{Docs: true}})
	if err != nil {
		t.Fatalf("CleanupInit: %v", err)
	}
	if !res.OK || res.Result.Op != "skip" {
		t.Fatalf("result = %+v", res)
	}
	if res.Archive == nil || res.Archive.Mode != "applied" {
		t.Fatalf("archive = %+v, want applied", res.Archive)
	}
	assertExists(t, filepath.Join(root, cleanup.ArchiveRel, "requirements.md"))
}

func TestPruneAgentBuilder(t *testing.T) {
	p, root, syncer := newPipeline(t)

	if _, err := p.PruneAgentBuilder(context.Background(), PruneOptions{Apply: true}); !errors.Is(err, cleanup.ErrAcknowledgementRequired) {
		t.Fatalf("error = %v, want acknowledgement required", err)
	}

	absent, err := p.PruneAgentBuilder(context.Background(), PruneOptions{Apply: true, IUnderstand: true, SyncAfter: true})
	if err != nil {
		t.Fatalf("absent: %v", err)
	}
	if absent.Prune.Op != "skip" || absent.Prune.Reason != "not present" || len(syncer.calls) != 0 {
		t.Fatalf("absent = %+v, calls %v", absent, syncer.calls)
	}

	agent := filepath.Join(root, cleanup.AgentBuilderRel)
	writeFile(t, filepath.Join(agent, "SKILL.md"), "agent")

	plan, err := p.PruneAgentBuilder(context.Background(), PruneOptions{IUnderstand: true, SyncAfter: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if plan.Prune.Mode != "dry-run" || !plan.SyncPlanned {
		t.Fatalf("dry run = %+v", plan)
	}
	assertExists(t, agent)

	res, err := p.PruneAgentBuilder(context.Background(), PruneOptions{Apply: true, IUnderstand: true, SyncAfter: true, Providers: "claude"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Prune.Mode != "applied" || res.Sync == nil || res.Sync.Mode != integrations.ModeApplied {
		t.Fatalf("apply = %+v", res)
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != "claude" {
		t.Errorf("sync calls = %v, want [claude]", syncer.calls)
	}
	assertNotExists(t, agent)
}

func TestApprove_CompleteReportsAgentBuilder(t *testing.T) {
	p, root, _ := newPipeline(t)
	s := state.New()
	s.Stage = state.C
	s.Scaffold.WrappersSynced = true
	if err := state.Save(filepath.Join(root, "init"), s); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, cleanup.AgentBuilderRel, "SKILL.md"), "agent")

	res, err := p.Approve(state.C)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if res.Stage != state.Complete || !res.AgentBuilderPresent {
		t.Fatalf("Approve = %+v", res)
	}
}

// --- helpers ---

type fakeSyncer struct {
	calls  []string
	result integrations.SyncResult
}

func (f *fakeSyncer) Sync(_ context.Context, _, providers string, _ bool) integrations.SyncResult {
	f.calls = append(f.calls, providers)
	if f.result.Op != "" {
		return f.result
	}
	return integrations.SyncResult{Op: "run", Cmd: "fake-sync", Mode: integrations.ModeApplied}
}

func newPipeline(t *testing.T) (*Pipeline, string, *fakeSyncer) {
	t.Helper()
	root := t.TempDir()
	syncer := &fakeSyncer{}
	p := New(Env{
		RepoRoot:      root,
		BootstrapDir:  filepath.Join(root, "init"),
		DocsRoot:      filepath.Join(root, "init", "stage-a-docs"),
		BlueprintPath: filepath.Join(root, "init", "project-blueprint.json"),
		Syncer:        syncer,
	})
	return p, root, syncer
}

func mustStart(t *testing.T, p *Pipeline) {
	t.Helper()
	if _, err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func mustApprove(t *testing.T, p *Pipeline, stage, want state.Stage) {
	t.Helper()
	res, err := p.Approve(stage)
	if err != nil {
		t.Fatalf("Approve(%s): %v", stage, err)
	}
	if res.Stage != want {
		t.Fatalf("Approve(%s) stage = %s, want %s", stage, res.Stage, want)
	}
}

func loadState(t *testing.T, root string) *state.State {
	t.Helper()
	s, _, err := state.Load(filepath.Join(root, "init"))
	if err != nil || s == nil {
		t.Fatalf("loading state: %v (nil=%v)", err, s == nil)
	}
	return s
}

func writeGoodDocs(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "init", "stage-a-docs")
	writeFile(t, filepath.Join(dir, "requirements.md"), "# Requirements\n\n## Conclusions\nShip it.\n\n## Goals\n- Orders.\n\n## Non-goals\n- Loyalty.\n")
	writeFile(t, filepath.Join(dir, "non-functional-requirements.md"), "# Non-functional Requirements\n\n## Conclusions\nP95 under 200ms.\n")
	writeFile(t, filepath.Join(dir, "domain-glossary.md"), "# Domain Glossary\n\n## Terms\n- Order: a confirmed basket.\n")
	writeFile(t, filepath.Join(dir, "risk-open-questions.md"), "# Risks and Open Questions\n\n## Open questions\n- Which payment provider? Owner: Sam.\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s to be absent", path)
	}
}

func assertWarning(t *testing.T, warnings []string, substr string) {
	t.Helper()
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Fatalf("no warning containing %q in %v", substr, warnings)
}
