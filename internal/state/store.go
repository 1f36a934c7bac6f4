package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/agentx-labs/initkit/internal/platform"
)

// ToolVersion is stamped into every saved state file. The CLI sets it from
// its build version.
var ToolVersion = "dev"

// timeNow is swapped in tests.
var timeNow = time.Now

// Path returns the state file location inside the bootstrap directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether a state file is present in dir.
func Exists(dir string) bool {
	return platform.Exists(Path(dir))
}

// Load reads and normalizes the state file in the bootstrap directory dir.
// An absent file returns a nil state and no error. A malformed file also
// returns a nil state, with the parse failure reported as a warning.
func Load(dir string) (*State, []string, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("not a JSON object")
		}
		return nil, []string{fmt.Sprintf("Failed to parse state file %s: %v", path, err)}, nil
	}

	normalized, _ := Normalize(raw)
	s, warnings, err := decode(normalized)
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to parse state file %s: %v", path, err)}, nil
	}
	return s, warnings, nil
}

// Save writes s atomically to the bootstrap directory dir, stamping the
// running tool version.
func Save(dir string, s *State) error {
	s.ToolVersion = ToolVersion
	if s.Version < CurrentVersion {
		s.Version = CurrentVersion
	}
	if err := platform.WriteJSONAtomic(Path(dir), s); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

type migration struct {
	name  string
	apply func(raw map[string]json.RawMessage) bool
}

// migrations run in order on every load. Each must be idempotent.
var migrations = []migration{
	{name: "kebab-case stage keys", apply: migrateStageKeys},
	{name: "default sections", apply: fillSections},
	{name: "schema version", apply: raiseVersion},
}

// Normalize applies the migration list to a copy of raw and returns it
// with the names of the migrations that changed something.
func Normalize(raw map[string]json.RawMessage) (map[string]json.RawMessage, []string) {
	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	var applied []string
	for _, m := range migrations {
		if m.apply(out) {
			applied = append(applied, m.name)
		}
	}
	return out, applied
}

func migrateStageKeys(raw map[string]json.RawMessage) bool {
	changed := false
	for _, pair := range [][2]string{{"stageA", "stage-a"}, {"stageB", "stage-b"}, {"stageC", "stage-c"}} {
		legacy, kebab := pair[0], pair[1]
		v, ok := raw[legacy]
		if !ok {
			continue
		}
		if cur, has := raw[kebab]; (!has || isNull(cur)) && !isNull(v) {
			raw[kebab] = v
		}
		delete(raw, legacy)
		changed = true
	}
	return changed
}

func fillSections(raw map[string]json.RawMessage) bool {
	changed := false
	for _, key := range []string{"stage-a", "stage-b", "stage-c"} {
		if v, ok := raw[key]; !ok || isNull(v) {
			raw[key] = json.RawMessage(`{}`)
			changed = true
		}
	}
	if v, ok := raw["history"]; !ok || isNull(v) {
		raw["history"] = json.RawMessage(`[]`)
		changed = true
	}
	if v, ok := raw["stage"]; !ok || isNull(v) {
		raw["stage"] = json.RawMessage(`"A"`)
		changed = true
	}
	return changed
}

func raiseVersion(raw map[string]json.RawMessage) bool {
	var v int
	if data, ok := raw["version"]; ok {
		if err := json.Unmarshal(data, &v); err != nil {
			v = 0
		}
	}
	if v >= CurrentVersion {
		return false
	}
	raw["version"] = json.RawMessage(fmt.Sprintf("%d", CurrentVersion))
	return true
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

// decode turns a normalized raw map into a State. Sections decode over
// their defaults so partially written sections keep the missing flags.
func decode(raw map[string]json.RawMessage) (*State, []string, error) {
	s := &State{Requirements: defaultRequirements()}
	var warnings []string

	fields := []struct {
		key string
		dst any
	}{
		{"version", &s.Version},
		{"toolVersion", &s.ToolVersion},
		{"stage", &s.Stage},
		{"createdAt", &s.CreatedAt},
		{"stage-a", &s.Requirements},
		{"stage-b", &s.Blueprint},
		{"stage-c", &s.Scaffold},
		{"history", &s.History},
	}
	for _, f := range fields {
		data, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, f.dst); err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", f.key, err)
		}
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}

	var unknown []string
	for k := range raw {
		if !knownKeys[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[k] = raw[k]
		warnings = append(warnings, fmt.Sprintf("State file has unrecognized key %q; preserving it unchanged.", k))
	}

	if !s.Stage.Valid() {
		warnings = append(warnings, fmt.Sprintf("State file has unknown stage %q.", s.Stage))
	}
	if w := checkToolVersion(s.ToolVersion); w != "" {
		warnings = append(warnings, w)
	}
	return s, warnings, nil
}

// checkToolVersion warns when the file was written by a newer build.
func checkToolVersion(stored string) string {
	if stored == "" {
		return ""
	}
	written, err := semver.NewVersion(stored)
	if err != nil {
		return ""
	}
	running, err := semver.NewVersion(ToolVersion)
	if err != nil {
		return ""
	}
	if written.GreaterThan(running) {
		return fmt.Sprintf("State file was written by version %s, newer than this build (%s); fields it added may be dropped on save.", written, running)
	}
	return ""
}

// AppendHistory records an event with a fresh id and the current UTC time.
func AppendHistory(s *State, event string, details any) {
	s.History = append(s.History, HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: formatTime(timeNow()),
		Event:     event,
		Details:   details,
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
