package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RelPath is the manifest location relative to the repository root.
var RelPath = filepath.Join(".ai", "skills", "_meta", "sync-manifest.json")

// Manifest is the flat sync manifest shape.
type Manifest struct {
	Version           int      `json:"version"`
	IncludePrefixes   []string `json:"includePrefixes"`
	IncludeSkills     []string `json:"includeSkills"`
	ExcludePrefixes   []string `json:"excludePrefixes"`
	ExcludeSkillNames []string `json:"excludeSkillNames"`

	// Extra holds keys the pipeline does not manage.
	Extra map[string]json.RawMessage `json:"-"`
}

var managedKeys = map[string]bool{
	"version":           true,
	"includePrefixes":   true,
	"includeSkills":     true,
	"excludePrefixes":   true,
	"excludeSkillNames": true,
	"excludeSkills":     true,
}

// Default returns an empty version 1 manifest.
func Default() *Manifest {
	return &Manifest{
		Version:           1,
		IncludePrefixes:   []string{},
		IncludeSkills:     []string{},
		ExcludePrefixes:   []string{},
		ExcludeSkillNames: []string{},
	}
}

// Read loads the manifest at path. A missing file yields Default. The
// returned notes describe legacy shapes that were migrated and schema
// issues in the stored file.
func Read(path string) (*Manifest, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil, nil
		}
		return nil, nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("parsing manifest %s: not a JSON object", path)
	}

	var notes []string
	issues, err := Validate(data)
	if err != nil {
		return nil, nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	for _, issue := range issues {
		notes = append(notes, fmt.Sprintf("Sync manifest %s", issue))
	}

	m, migrated := decode(raw)
	return m, append(notes, migrated...), nil
}

func decode(raw map[string]json.RawMessage) (*Manifest, []string) {
	m := Default()
	var notes []string

	if v, ok := raw["version"]; ok {
		var version int
		if json.Unmarshal(v, &version) == nil && version >= 1 {
			m.Version = version
		}
	}

	var legacy struct {
		Current *struct {
			IncludePrefixes   json.RawMessage `json:"includePrefixes"`
			ExcludePrefixes   json.RawMessage `json:"excludePrefixes"`
			ExcludeSkillNames json.RawMessage `json:"excludeSkillNames"`
		} `json:"current"`
	}
	if v, ok := raw["collections"]; ok {
		_ = json.Unmarshal(v, &legacy)
	}

	pick := func(field string, dst *[]string, fallbacks ...json.RawMessage) {
		if list, ok := stringList(raw[field]); ok {
			*dst = list
			return
		}
		for _, fb := range fallbacks {
			if list, ok := stringList(fb); ok {
				*dst = list
				notes = append(notes, fmt.Sprintf("Migrated legacy manifest value into %s.", field))
				return
			}
		}
	}

	var curInclude, curExclude, curNames json.RawMessage
	if legacy.Current != nil {
		curInclude = legacy.Current.IncludePrefixes
		curExclude = legacy.Current.ExcludePrefixes
		curNames = legacy.Current.ExcludeSkillNames
	}
	pick("includePrefixes", &m.IncludePrefixes, curInclude)
	pick("includeSkills", &m.IncludeSkills)
	pick("excludePrefixes", &m.ExcludePrefixes, curExclude)
	pick("excludeSkillNames", &m.ExcludeSkillNames, raw["excludeSkills"], curNames)

	for k, v := range raw {
		if managedKeys[k] {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]json.RawMessage)
		}
		m.Extra[k] = v
	}
	return m, notes
}

func stringList(v json.RawMessage) ([]string, bool) {
	if len(v) == 0 {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(v, &list); err != nil || list == nil {
		return nil, false
	}
	return list, true
}

type manifestFields Manifest

// MarshalJSON writes the managed fields followed by preserved keys in
// sorted order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	for _, list := range []*[]string{&m.IncludePrefixes, &m.IncludeSkills, &m.ExcludePrefixes, &m.ExcludeSkillNames} {
		if *list == nil {
			*list = []string{}
		}
	}
	base, err := json.Marshal(manifestFields(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		if !managedKeys[k] {
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
		buf.Write(m.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
