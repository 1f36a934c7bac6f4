// Package templates serves the literal text templates the pipeline
// materializes: the Stage A documents, the example blueprint, the project
// README, and the per-stack config sets under scaffold-configs/.
//
// Templates are embedded in the binary. A templates directory on disk,
// when configured, takes precedence: single files are looked up there
// first, and a config set present on disk replaces the embedded set of the
// same name entirely.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed all:files
var embedded embed.FS

const (
	// BlueprintExample is the example blueprint seeded by start.
	BlueprintExample = "project-blueprint.example.json"
	// Readme is the project README template.
	Readme = "README.template.md"
	// ConfigSets is the directory holding one subdirectory per config set.
	ConfigSets = "scaffold-configs"
)

// DocTemplate maps a Stage A template to the document it seeds.
type DocTemplate struct {
	Template string
	Target   string
}

// DocTemplates lists the Stage A document templates in seeding order.
var DocTemplates = []DocTemplate{
	{Template: "stage-a/requirements.template.md", Target: "requirements.md"},
	{Template: "stage-a/non-functional-requirements.template.md", Target: "non-functional-requirements.md"},
	{Template: "stage-a/domain-glossary.template.md", Target: "domain-glossary.md"},
	{Template: "stage-a/risk-open-questions.template.md", Target: "risk-open-questions.md"},
}

// Source resolves templates by slash-separated name.
type Source struct {
	builtin  fs.FS
	override fs.FS
}

// New returns a Source backed by the embedded templates, with dir (if not
// empty) consulted first.
func New(dir string) (*Source, error) {
	builtin, err := fs.Sub(embedded, "files")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	s := &Source{builtin: builtin}
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("opening templates directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("templates directory %s is not a directory", dir)
		}
		s.override = os.DirFS(dir)
	}
	return s, nil
}

// Embedded returns a Source with no on-disk override.
func Embedded() *Source {
	s, err := New("")
	if err != nil {
		panic(err)
	}
	return s
}

// ReadFile returns the named template. fs.ErrNotExist is returned when
// neither the override nor the embedded tree has it.
func (s *Source) ReadFile(name string) ([]byte, error) {
	if s.override != nil {
		data, err := fs.ReadFile(s.override, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}
	}
	data, err := fs.ReadFile(s.builtin, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	return data, nil
}

// ConfigSet returns the file tree of the named config set, or false when
// no such set exists.
func (s *Source) ConfigSet(name string) (fs.FS, bool) {
	dir := path.Join(ConfigSets, name)
	for _, fsys := range []fs.FS{s.override, s.builtin} {
		if fsys == nil {
			continue
		}
		info, err := fs.Stat(fsys, dir)
		if err != nil || !info.IsDir() {
			continue
		}
		sub, err := fs.Sub(fsys, dir)
		if err != nil {
			continue
		}
		return sub, true
	}
	return nil, false
}
