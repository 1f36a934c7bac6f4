package pipeline

import (
	"github.com/agentx-labs/initkit/internal/cleanup"
	"github.com/agentx-labs/initkit/internal/scaffold"
	"github.com/agentx-labs/initkit/internal/state"
)

// StartResult reports the start command.
type StartResult struct {
	Templates []scaffold.Op `json:"templates"`
	Created   []scaffold.Op `json:"created"`
	Existing  bool          `json:"existing"`
	StatePath string        `json:"statePath"`
	Progress  state.Summary `json:"progress"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// Start seeds the Stage A templates and creates the initial state unless
// one already exists.
func (p *Pipeline) Start() (StartResult, error) {
	ops, err := scaffold.SeedTemplates(p.env.Templates, p.env.BootstrapDir, p.env.DocsRoot, p.env.BlueprintPath, true)
	if err != nil {
		return StartResult{}, err
	}
	res := StartResult{
		Templates: ops,
		Created:   scaffold.Created(ops),
		StatePath: state.Path(p.env.BootstrapDir),
	}

	existing, warnings, err := p.loadState()
	if err != nil {
		return res, err
	}
	res.Warnings = warnings
	if existing != nil {
		res.Existing = true
		res.Progress = state.Progress(existing)
		return res, nil
	}

	s := state.New()
	state.AppendHistory(s, "init_started", "Initialization started")
	if err := p.saveState(s); err != nil {
		return res, err
	}
	p.log.Info("init state created", "path", res.StatePath)
	res.Progress = state.Progress(s)
	return res, nil
}

// StatusResult reports the status command. Progress is nil when no state
// file exists.
type StatusResult struct {
	Progress *state.Summary `json:"progress"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Status summarizes the persisted state without modifying it.
func (p *Pipeline) Status() (StatusResult, error) {
	s, warnings, err := p.loadState()
	if err != nil {
		return StatusResult{}, err
	}
	res := StatusResult{Warnings: warnings}
	if s != nil {
		pr := state.Progress(s)
		res.Progress = &pr
	}
	return res, nil
}

// AdvanceResult is the checkpoint report for the current stage.
type AdvanceResult struct {
	Stage    state.Stage `json:"stage"`
	Complete bool        `json:"complete"`
	Title    string      `json:"title,omitempty"`
	Lines    []string    `json:"lines,omitempty"`
	Command  string      `json:"command,omitempty"`
	Optional string      `json:"optional,omitempty"`
}

const cleanupHint = "Optional: run cleanup-init --apply --i-understand --archive to archive and remove init/."

type checkpoint struct {
	title string
	lines []string
}

var checkpoints = map[state.Stage]checkpoint{
	state.A: {
		title: "Stage A -> B Checkpoint",
		lines: []string{
			"Stage A docs validated.",
			"Confirm the user reviewed and approved docs under init/stage-a-docs/.",
		},
	},
	state.B: {
		title: "Stage B -> C Checkpoint",
		lines: []string{
			"Stage B blueprint validated.",
			"Confirm the user reviewed and approved init/project-blueprint.json.",
		},
	},
	state.C: {
		title: "Stage C Completion Checkpoint",
		lines: []string{
			"Scaffold and skill packs applied.",
			"Confirm the user reviewed the initialization result.",
		},
	},
}

// Advance reports what the user must confirm before approving the current
// stage. It never changes state.
func (p *Pipeline) Advance() (AdvanceResult, error) {
	s, _, err := p.requireState()
	if err != nil {
		return AdvanceResult{}, err
	}
	res := AdvanceResult{Stage: s.Stage}
	cp, ok := checkpoints[s.Stage]
	if !ok {
		res.Complete = true
		return res, nil
	}
	if err := state.GateMet(s); err != nil {
		return res, gate(err)
	}
	res.Title = cp.title
	res.Lines = cp.lines
	res.Command = "approve --stage " + string(s.Stage)
	if s.Stage == state.C {
		res.Optional = cleanupHint
	}
	return res, nil
}

// ApproveResult reports a successful approval.
type ApproveResult struct {
	Approved            state.Stage `json:"approved"`
	Stage               state.Stage `json:"stage"`
	AgentBuilderPresent bool        `json:"agentBuilderPresent"`
}

// Approve records the user's approval of stage and advances the pipeline.
func (p *Pipeline) Approve(stage state.Stage) (ApproveResult, error) {
	s, _, err := p.requireState()
	if err != nil {
		return ApproveResult{}, err
	}
	next, err := state.Approve(s, stage)
	if err != nil {
		return ApproveResult{Stage: s.Stage}, gate(err)
	}
	if err := p.saveState(s); err != nil {
		return ApproveResult{}, err
	}
	p.log.Info("stage approved", "stage", stage, "next", next)
	res := ApproveResult{Approved: stage, Stage: next}
	if next == state.Complete {
		res.AgentBuilderPresent = cleanup.AgentBuilderPresent(p.env.RepoRoot)
	}
	return res, nil
}
