package scaffold

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/templates"
)

// MarkerFile marks a bootstrap directory as created by start. cleanup-init
// refuses to remove a bootstrap directory without it.
const MarkerFile = ".init-kit"

const markerContent = "This directory was created by the init pipeline.\n" +
	"cleanup-init removes it only while this marker file is present.\n"

// SeedTemplates ensures docsRoot exists and writes the Stage A document
// templates and the example blueprint where missing. It also drops the
// provenance marker into bootstrapDir.
func SeedTemplates(src *templates.Source, bootstrapDir, docsRoot, blueprintPath string, apply bool) ([]Op, error) {
	p := &planner{apply: apply}
	p.dir(docsRoot)

	for _, dt := range templates.DocTemplates {
		seedFile(p, src, dt.Template, filepath.Join(docsRoot, dt.Target))
	}
	seedFile(p, src, templates.BlueprintExample, blueprintPath)

	p.file(filepath.Join(bootstrapDir, MarkerFile), []byte(markerContent))
	return p.ops, p.err
}

func seedFile(p *planner, src *templates.Source, name, target string) {
	if p.err != nil {
		return
	}
	data, err := src.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.skip(name, "missing template")
			return
		}
		p.err = err
		return
	}
	p.file(target, data)
}

// Created returns the ops that were applied.
func Created(ops []Op) []Op {
	var out []Op
	for _, op := range ops {
		if op.Mode == ModeApplied {
			out = append(out, op)
		}
	}
	return out
}
