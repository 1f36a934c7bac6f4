package blueprint

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const scenario = `{
  "version": 1,
  "project": {"name": "demo", "description": "d"},
  "repo": {"layout": "single", "language": "go"},
  "skills": {"packs": ["workflows"]}
}`

func TestValidate_Scenario(t *testing.T) {
	r := Validate(mustParse(t, scenario))
	if !r.OK {
		t.Fatalf("expected ok, errors: %v", r.Errors)
	}
	if !reflect.DeepEqual(r.Packs, []string{"workflows"}) {
		t.Errorf("Packs = %v", r.Packs)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], `"standards"`) {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not an object", `[1, 2]`, "Blueprint must be a JSON object."},
		{"missing name", `{"version": 1, "project": {"description": "d"}, "repo": {"layout": "single", "language": "go"}}`, "project.name is required (string)."},
		{"missing description", `{"version": 1, "project": {"name": "n"}, "repo": {"layout": "single", "language": "go"}}`, "project.description is required (string)."},
		{"numeric name", `{"version": 1, "project": {"name": 5, "description": "d"}, "repo": {"layout": "single", "language": "go"}}`, "project.name is required (string)."},
		{"version zero", `{"version": 0, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"}}`, "Blueprint.version must be an integer >= 1."},
		{"version fraction", `{"version": 1.5, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"}}`, "Blueprint.version must be an integer >= 1."},
		{"version string", `{"version": "1", "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"}}`, "Blueprint.version must be an integer >= 1."},
		{"bad layout", `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "multi", "language": "go"}}`, "repo.layout is required and must be one of: single, monorepo"},
		{"missing language", `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single"}}`, "repo.language is required (string)."},
		{"packs not array", `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"}, "skills": {"packs": "workflows"}}`, "skills.packs must be an array of strings when present."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(mustParse(t, tt.doc))
			if r.OK {
				t.Fatal("expected validation failure")
			}
			assertContains(t, r.Errors, tt.wantErr)
		})
	}
}

func TestValidate_VersionAsFloatInteger(t *testing.T) {
	r := Validate(mustParse(t, `{"version": 2.0, "project": {"name": "n", "description": "d"}, "repo": {"layout": "monorepo", "language": "ts"}, "skills": {"packs": ["workflows", "standards"]}}`))
	if !r.OK {
		t.Errorf("2.0 should be accepted as an integer: %v", r.Errors)
	}
}

func TestValidate_CapabilityWarnings(t *testing.T) {
	doc := `{
  "version": 1,
  "project": {"name": "n", "description": "d"},
  "repo": {"layout": "single", "language": "go"},
  "capabilities": {
    "database": {"enabled": true},
    "api": {"style": 3},
    "bpmn": {"enabled": "yes"},
    "backend": {"enabled": "yes"}
  },
  "skills": {"packs": ["workflows", "standards"], "excludePrefixes": ["a/", 7]}
}`
	r := Validate(mustParse(t, doc))
	if !r.OK {
		t.Fatalf("warnings must not fail validation: %v", r.Errors)
	}
	assertContains(t, r.Warnings, "capabilities.database.enabled=true but capabilities.database.kind is missing.")
	assertContains(t, r.Warnings, "capabilities.api.style should be a string.")
	assertContains(t, r.Warnings, "capabilities.bpmn.enabled should be boolean when present.")
	assertHasPrefix(t, r.Warnings, "capabilities.backend.enabled: ")
	assertHasPrefix(t, r.Warnings, "skills.excludePrefixes.1: ")

	for _, w := range r.Warnings {
		if strings.HasPrefix(w, "capabilities.bpmn.enabled:") || strings.HasPrefix(w, "capabilities.api.style:") {
			t.Errorf("schema duplicated a hand-written warning: %q", w)
		}
	}
}

func TestValidate_FalsyBpmnIsUnset(t *testing.T) {
	for _, bpmn := range []string{`false`, `null`} {
		doc := `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"},
  "capabilities": {"bpmn": ` + bpmn + `}, "skills": {"packs": ["workflows", "standards"]}}`
		r := Validate(mustParse(t, doc))
		for _, w := range r.Warnings {
			if strings.HasPrefix(w, "capabilities.bpmn") {
				t.Errorf("bpmn=%s: unexpected warning %q", bpmn, w)
			}
		}
	}

	r := Validate(mustParse(t, `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"},
  "capabilities": {"bpmn": {"kind": "camunda"}}, "skills": {"packs": ["workflows", "standards"]}}`))
	assertContains(t, r.Warnings, "capabilities.bpmn.enabled should be boolean when present.")
}

func TestValidate_NormalizesPacks(t *testing.T) {
	doc := `{"version": 1, "project": {"name": "n", "description": "d"}, "repo": {"layout": "single", "language": "go"},
  "skills": {"packs": ["frontend", " workflows ", "ml", "standards", "workflows", ""]}}`
	r := Validate(mustParse(t, doc))
	want := []string{"workflows", "standards", "frontend", "ml"}
	if !reflect.DeepEqual(r.Packs, want) {
		t.Errorf("Packs = %v, want %v", r.Packs, want)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestAccessors(t *testing.T) {
	bp := mustParse(t, `{
  "project": {"name": "demo", "domain": "retail"},
  "repo": {"layout": "monorepo", "language": "typescript", "packageManager": "pnpm"},
  "capabilities": {"frontend": {"enabled": true, "framework": "react"}, "backend": "bad"},
  "skills": {"excludeSkills": ["legacy-skill"]}
}`)
	if bp.ProjectName() != "demo" || bp.Domain() != "retail" {
		t.Errorf("project accessors: %q %q", bp.ProjectName(), bp.Domain())
	}
	if !bp.IsMonorepo() || bp.PackageManager() != "pnpm" {
		t.Error("repo accessors wrong")
	}
	fe := bp.Capability("frontend")
	if !fe.Enabled || fe.Framework != "react" {
		t.Errorf("frontend = %+v", fe)
	}
	if be := bp.Capability("backend"); !be.Present || be.Enabled {
		t.Errorf("malformed backend = %+v", be)
	}
	if c := bp.Capability("database"); c.Present {
		t.Errorf("absent capability reported present: %+v", c)
	}
	names, ok := bp.ExcludeSkillNames()
	if !ok || !reflect.DeepEqual(names, []string{"legacy-skill"}) {
		t.Errorf("ExcludeSkillNames = %v, %v", names, ok)
	}
	if _, ok := bp.ExcludePrefixes(); ok {
		t.Error("ExcludePrefixes should be absent")
	}
}

func TestFlatten(t *testing.T) {
	bp := mustParse(t, `{
  "version": 1,
  "project": {"name": "demo", "tags": null},
  "repo": {"language": "go"},
  "skills": {"packs": ["workflows", "standards"]},
  "capabilities": {"backend": {"enabled": true}}
}`)
	got := Flatten(bp)
	want := []KV{
		{"capabilities.backend.enabled", "true"},
		{"project.name", "demo"},
		{"project.tags", ""},
		{"repo.language", "go"},
		{"skills.packs", "workflows,standards"},
		{"version", "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten =\n%v\nwant\n%v", got, want)
	}
}

func TestSetPacksAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project-blueprint.json")
	bp := mustParse(t, `{"version": 1, "project": {"name": "demo"}, "custom": {"keep": true}}`)
	if err := bp.SetPacks([]string{"workflows", "standards"}); err != nil {
		t.Fatal(err)
	}
	if err := bp.Save(path); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Packs(), []string{"workflows", "standards"}) {
		t.Errorf("Packs after save = %v", back.Packs())
	}
	if Values(back)["custom.keep"] != "true" {
		t.Error("unknown fields should survive a rewrite")
	}
}

func TestSetPacks_NotObject(t *testing.T) {
	if err := mustParse(t, `"text"`).SetPacks([]string{"workflows"}); err == nil {
		t.Fatal("expected error for non-object blueprint")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.json")
	if _, err := Load(missing); err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("missing file error should name the path: %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"version": 1`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parsing blueprint") {
		t.Errorf("parse error = %v", err)
	}
}

// --- helpers ---

func mustParse(t *testing.T, doc string) *Blueprint {
	t.Helper()
	bp, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return bp
}

func assertContains(t *testing.T, list []string, want string) {
	t.Helper()
	for _, s := range list {
		if s == want {
			return
		}
	}
	t.Errorf("%q not found in %v", want, list)
}

func assertHasPrefix(t *testing.T, list []string, prefix string) {
	t.Helper()
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return
		}
	}
	t.Errorf("no entry with prefix %q in %v", prefix, list)
}
