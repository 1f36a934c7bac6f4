package state

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongStage is returned when approving a stage other than the current one.
	ErrWrongStage = errors.New("wrong stage")
	// ErrGateNotMet is returned when the current stage's gating flag is unset.
	ErrGateNotMet = errors.New("stage gate not met")
)

// GateError carries a user-facing refusal message and unwraps to
// ErrWrongStage or ErrGateNotMet.
type GateError struct {
	Kind error
	Msg  string
}

func (e *GateError) Error() string { return e.Msg }

func (e *GateError) Unwrap() error { return e.Kind }

type transition struct {
	next    Stage
	event   string
	missing string
	gate    func(*State) bool
	approve func(*State)
}

var transitions = map[Stage]transition{
	A: {
		next:    B,
		event:   "stage_a_approved",
		missing: "Stage A docs not validated yet. Run check-docs first.",
		gate:    func(s *State) bool { return s.Requirements.Validated },
		approve: func(s *State) { s.Requirements.UserApproved = true },
	},
	B: {
		next:    C,
		event:   "stage_b_approved",
		missing: "Stage B blueprint not validated yet. Run validate first.",
		gate:    func(s *State) bool { return s.Blueprint.Validated },
		approve: func(s *State) { s.Blueprint.UserApproved = true },
	},
	C: {
		next:    Complete,
		event:   "stage_c_approved",
		missing: "Stage C not complete yet. Run apply first.",
		gate:    func(s *State) bool { return s.Scaffold.WrappersSynced },
		approve: func(s *State) { s.Scaffold.UserApproved = true },
	},
}

// GateMet reports whether the current stage's gate is satisfied. At
// Complete there is nothing left to gate.
func GateMet(s *State) error {
	t, ok := transitions[s.Stage]
	if !ok {
		return nil
	}
	if !t.gate(s) {
		return &GateError{Kind: ErrGateNotMet, Msg: t.missing}
	}
	return nil
}

// CanApprove reports the first failing precondition for approving stage.
func CanApprove(s *State, stage Stage) error {
	t, ok := transitions[stage]
	if !ok {
		return &GateError{Kind: ErrWrongStage, Msg: fmt.Sprintf("Stage %q cannot be approved.", stage)}
	}
	if s.Stage != stage {
		return &GateError{Kind: ErrWrongStage, Msg: fmt.Sprintf("Current stage is %s. Cannot approve Stage %s.", s.Stage, stage)}
	}
	if !t.gate(s) {
		return &GateError{Kind: ErrGateNotMet, Msg: t.missing}
	}
	return nil
}

// Approve marks stage approved, advances to the next stage, and records
// the approval in history. It is the only code path that changes Stage.
func Approve(s *State, stage Stage) (Stage, error) {
	if err := CanApprove(s, stage); err != nil {
		return s.Stage, err
	}
	t := transitions[stage]
	t.approve(s)
	s.Stage = t.next
	AppendHistory(s, t.event, approvalDetails(stage, t.next))
	return s.Stage, nil
}

func approvalDetails(from, to Stage) string {
	if to == Complete {
		return fmt.Sprintf("User approved Stage %s, initialization complete", from)
	}
	return fmt.Sprintf("User approved Stage %s, advancing to Stage %s", from, to)
}

// StageAProgress summarizes Stage A.
type StageAProgress struct {
	MustAskTotal    int  `json:"mustAskTotal"`
	MustAskAnswered int  `json:"mustAskAnswered"`
	DocsTotal       int  `json:"docsTotal"`
	DocsWritten     int  `json:"docsWritten"`
	Validated       bool `json:"validated"`
	UserApproved    bool `json:"userApproved"`
}

// Summary is a read-only view of a State's progress.
type Summary struct {
	Stage  Stage          `json:"stage"`
	StageA StageAProgress `json:"stage-a"`
	StageB Blueprint      `json:"stage-b"`
	StageC Scaffold       `json:"stage-c"`
}

// Progress summarizes s without modifying it.
func Progress(s *State) Summary {
	p := Summary{
		Stage: s.Stage,
		StageA: StageAProgress{
			MustAskTotal: len(s.Requirements.MustAsk),
			DocsTotal:    len(DocKeys),
			Validated:    s.Requirements.Validated,
			UserApproved: s.Requirements.UserApproved,
		},
		StageB: s.Blueprint,
		StageC: s.Scaffold,
	}
	for _, q := range s.Requirements.MustAsk {
		if q.Answered {
			p.StageA.MustAskAnswered++
		}
	}
	for _, k := range DocKeys {
		if s.Requirements.DocsWritten[k] {
			p.StageA.DocsWritten++
		}
	}
	return p
}
