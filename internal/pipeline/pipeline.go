package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/integrations"
	"github.com/agentx-labs/initkit/internal/logging"
	"github.com/agentx-labs/initkit/internal/state"
	"github.com/agentx-labs/initkit/internal/templates"
)

var (
	// ErrNoState is returned by commands that need an existing state file.
	ErrNoState = errors.New("no init state")
	// ErrStageGate is wrapped by every stage-gate refusal.
	ErrStageGate = errors.New("stage gate")
	// ErrRefused is wrapped by refusals that are not stage gates.
	ErrRefused = errors.New("refused")
)

// Refusal is a guard failure with a message meant for the user.
type Refusal struct {
	Kind error
	Msg  string
}

func (r *Refusal) Error() string { return r.Msg }

func (r *Refusal) Unwrap() error { return r.Kind }

func refuse(format string, args ...any) error {
	return &Refusal{Kind: ErrRefused, Msg: fmt.Sprintf(format, args...)}
}

// gate converts a state transition error into a stage-gate refusal while
// keeping the state sentinel reachable through errors.Is.
func gate(err error) error {
	return &Refusal{Kind: errors.Join(ErrStageGate, err), Msg: err.Error()}
}

// Env holds the resolved locations and collaborators for one invocation.
type Env struct {
	RepoRoot      string
	BootstrapDir  string
	DocsRoot      string
	BlueprintPath string
	// Providers is the default --providers value.
	Providers string
	Templates *templates.Source
	Syncer    integrations.Syncer
	Logger    *slog.Logger
}

// Pipeline runs commands against one repository.
type Pipeline struct {
	env Env
	log *slog.Logger
}

// New returns a Pipeline for env. Missing collaborators fall back to the
// embedded templates, a discarding logger, and a node-backed syncer.
func New(env Env) *Pipeline {
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}
	if env.Templates == nil {
		env.Templates = templates.Embedded()
	}
	if env.Syncer == nil {
		env.Syncer = integrations.NewExec("node", env.Logger)
	}
	if env.Providers == "" {
		env.Providers = integrations.Both
	}
	return &Pipeline{env: env, log: env.Logger}
}

// Env returns the environment the pipeline was built with.
func (p *Pipeline) Env() Env { return p.env }

// Rel returns path relative to the repository root when possible.
func (p *Pipeline) Rel(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(p.env.RepoRoot, path)
	if err != nil {
		return path
	}
	return rel
}

// loadState reads the state file, logging any degraded-read warnings.
func (p *Pipeline) loadState() (*state.State, []string, error) {
	s, warnings, err := state.Load(p.env.BootstrapDir)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		p.log.Warn(w, "path", state.Path(p.env.BootstrapDir))
	}
	return s, warnings, nil
}

func (p *Pipeline) requireState() (*state.State, []string, error) {
	s, warnings, err := p.loadState()
	if err != nil {
		return nil, warnings, err
	}
	if s == nil {
		return nil, warnings, &Refusal{Kind: ErrNoState, Msg: `No init state detected. Run "start" first.`}
	}
	return s, warnings, nil
}

func (p *Pipeline) saveState(s *state.State) error {
	if err := state.Save(p.env.BootstrapDir, s); err != nil {
		return err
	}
	p.log.Debug("state saved", "stage", s.Stage, "path", state.Path(p.env.BootstrapDir))
	return nil
}

func (p *Pipeline) loadBlueprint() (*blueprint.Blueprint, error) {
	return blueprint.Load(p.env.BlueprintPath)
}

func (p *Pipeline) providers(override string) (string, error) {
	v := override
	if v == "" {
		v = p.env.Providers
	}
	if _, err := integrations.ParseProviders(v); err != nil {
		return "", refuse("Invalid --providers: %v", err)
	}
	return v, nil
}
