package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/agentx-labs/initkit/internal/platform"
)

// Blueprint wraps a decoded blueprint document. Numbers are json.Number.
type Blueprint struct {
	doc any
}

// Load reads and decodes the blueprint at path.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	bp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing blueprint %s: %w", path, err)
	}
	return bp, nil
}

// Parse decodes a blueprint document.
func Parse(data []byte) (*Blueprint, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return &Blueprint{doc: doc}, nil
}

// Doc returns the underlying document.
func (b *Blueprint) Doc() any {
	return b.doc
}

// Save writes the document back to path atomically.
func (b *Blueprint) Save(path string) error {
	if err := platform.WriteJSONAtomic(path, b.doc); err != nil {
		return fmt.Errorf("writing blueprint: %w", err)
	}
	return nil
}

func (b *Blueprint) root() map[string]any {
	m, _ := b.doc.(map[string]any)
	return m
}

func (b *Blueprint) section(name string) map[string]any {
	return object(b.root()[name])
}

// ProjectName returns project.name, or "" when absent or not a string.
func (b *Blueprint) ProjectName() string { return str(b.section("project")["name"]) }

// ProjectDescription returns project.description.
func (b *Blueprint) ProjectDescription() string { return str(b.section("project")["description"]) }

// Domain returns project.domain.
func (b *Blueprint) Domain() string { return str(b.section("project")["domain"]) }

// Layout returns repo.layout.
func (b *Blueprint) Layout() string { return str(b.section("repo")["layout"]) }

// Language returns repo.language.
func (b *Blueprint) Language() string { return str(b.section("repo")["language"]) }

// PackageManager returns repo.packageManager.
func (b *Blueprint) PackageManager() string { return str(b.section("repo")["packageManager"]) }

// IsMonorepo reports whether repo.layout is "monorepo".
func (b *Blueprint) IsMonorepo() bool { return b.Layout() == "monorepo" }

// Capability is one entry under capabilities. Non-conforming values read
// as their zero value.
type Capability struct {
	Present   bool
	Enabled   bool
	Kind      string
	Style     string
	Framework string
}

// Capability returns capabilities.<name>.
func (b *Blueprint) Capability(name string) Capability {
	raw, ok := b.section("capabilities")[name]
	if !ok || raw == nil {
		return Capability{}
	}
	m := object(raw)
	enabled, _ := m["enabled"].(bool)
	return Capability{
		Present:   true,
		Enabled:   enabled,
		Kind:      str(m["kind"]),
		Style:     str(m["style"]),
		Framework: str(m["framework"]),
	}
}

// Packs returns the string entries of skills.packs as written.
func (b *Blueprint) Packs() []string {
	list, _ := stringList(b.section("skills")["packs"])
	return list
}

// SetPacks replaces skills.packs, creating the skills object if needed.
func (b *Blueprint) SetPacks(packs []string) error {
	root := b.root()
	if root == nil {
		return errors.New("blueprint is not a JSON object")
	}
	skills := object(root["skills"])
	if skills == nil {
		skills = map[string]any{}
	}
	list := make([]any, len(packs))
	for i, p := range packs {
		list[i] = p
	}
	skills["packs"] = list
	root["skills"] = skills
	return nil
}

// ExcludePrefixes returns skills.excludePrefixes and whether it is an array.
func (b *Blueprint) ExcludePrefixes() ([]string, bool) {
	return stringList(b.section("skills")["excludePrefixes"])
}

// ExcludeSkillNames returns skills.excludeSkillNames, falling back to the
// legacy skills.excludeSkills.
func (b *Blueprint) ExcludeSkillNames() ([]string, bool) {
	skills := b.section("skills")
	if list, ok := stringList(skills["excludeSkillNames"]); ok {
		return list, true
	}
	return stringList(skills["excludeSkills"])
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// truthy treats false, zero, "", null and absent as unset.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	}
	return true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// stringList returns the string elements of v and whether v is an array.
func stringList(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
