package state

import (
	"bytes"
	"encoding/json"
	"sort"
)

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 2

// FileName is the state file name inside the bootstrap directory.
const FileName = ".init-state.json"

// Stage identifies a pipeline stage.
type Stage string

const (
	A        Stage = "A"
	B        Stage = "B"
	C        Stage = "C"
	Complete Stage = "complete"
)

// Name returns the human label shown in status output.
func (s Stage) Name() string {
	switch s {
	case A:
		return "Requirements"
	case B:
		return "Blueprint"
	case C:
		return "Scaffold"
	case Complete:
		return "Complete"
	}
	return string(s)
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case A, B, C, Complete:
		return true
	}
	return false
}

// ParseStage accepts a stage letter in either case.
func ParseStage(v string) (Stage, bool) {
	switch v {
	case "A", "a":
		return A, true
	case "B", "b":
		return B, true
	case "C", "c":
		return C, true
	case "complete":
		return Complete, true
	}
	return "", false
}

// MustAskKeys are the interview questions Stage A tracks, in display order.
var MustAskKeys = []string{
	"onePurpose",
	"userRoles",
	"mustRequirements",
	"outOfScope",
	"userJourneys",
	"constraints",
	"successMetrics",
}

// DocKeys are the Stage A document flags, in display order.
var DocKeys = []string{"requirements", "nfr", "glossary", "riskQuestions"}

// MustAsk tracks one interview question.
type MustAsk struct {
	Asked     bool    `json:"asked"`
	Answered  bool    `json:"answered"`
	WrittenTo *string `json:"writtenTo"`
}

// Requirements is the stage-a section.
type Requirements struct {
	MustAsk      map[string]MustAsk `json:"mustAsk"`
	DocsWritten  map[string]bool    `json:"docsWritten"`
	Validated    bool               `json:"validated"`
	UserApproved bool               `json:"userApproved"`
}

// Blueprint is the stage-b section.
type Blueprint struct {
	Drafted       bool `json:"drafted"`
	Validated     bool `json:"validated"`
	PacksReviewed bool `json:"packsReviewed"`
	UserApproved  bool `json:"userApproved"`
}

// Scaffold is the stage-c section.
type Scaffold struct {
	ScaffoldApplied  bool `json:"scaffoldApplied"`
	ConfigsGenerated bool `json:"configsGenerated"`
	ManifestUpdated  bool `json:"manifestUpdated"`
	WrappersSynced   bool `json:"wrappersSynced"`
	UserApproved     bool `json:"userApproved"`
}

// HistoryEntry is one append-only history record.
type HistoryEntry struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Details   any    `json:"details,omitempty"`
}

// State is the in-memory form of the state file.
type State struct {
	Version      int            `json:"version"`
	ToolVersion  string         `json:"toolVersion,omitempty"`
	Stage        Stage          `json:"stage"`
	CreatedAt    string         `json:"createdAt,omitempty"`
	Requirements Requirements   `json:"stage-a"`
	Blueprint    Blueprint      `json:"stage-b"`
	Scaffold     Scaffold       `json:"stage-c"`
	History      []HistoryEntry `json:"history"`

	// Extra holds unrecognized top-level keys, written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownKeys are the top-level keys State decodes itself.
var knownKeys = map[string]bool{
	"version":     true,
	"toolVersion": true,
	"stage":       true,
	"createdAt":   true,
	"stage-a":     true,
	"stage-b":     true,
	"stage-c":     true,
	"history":     true,
}

// New returns the initial state for a fresh pipeline run.
func New() *State {
	return &State{
		Version:      CurrentVersion,
		Stage:        A,
		CreatedAt:    formatTime(timeNow()),
		Requirements: defaultRequirements(),
		History:      []HistoryEntry{},
	}
}

func defaultRequirements() Requirements {
	r := Requirements{
		MustAsk:     make(map[string]MustAsk, len(MustAskKeys)),
		DocsWritten: make(map[string]bool, len(DocKeys)),
	}
	for _, k := range MustAskKeys {
		r.MustAsk[k] = MustAsk{}
	}
	for _, k := range DocKeys {
		r.DocsWritten[k] = false
	}
	return r
}

type stateFields State

// MarshalJSON writes the known fields followed by preserved unknown keys
// in sorted order.
func (s State) MarshalJSON() ([]byte, error) {
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
	base, err := json.Marshal(stateFields(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		if !knownKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(s.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
