package configgen

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/platform"
	"github.com/agentx-labs/initkit/internal/templates"
)

const templateSuffix = ".template"

// FileResult reports what happened to one config file.
type FileResult struct {
	File   string `json:"file"`
	Action string `json:"action"`
	Mode   string `json:"mode,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Generator renders config sets from a template source.
type Generator struct {
	src *templates.Source
}

// New returns a Generator reading from src.
func New(src *templates.Source) *Generator {
	return &Generator{src: src}
}

// Generate renders the config set matching bp's language and package
// manager into repoRoot. Language defaults to typescript and package
// manager to pnpm.
func (g *Generator) Generate(repoRoot string, bp *blueprint.Blueprint, apply bool) ([]FileResult, error) {
	language := strings.ToLower(orDefault(bp.Language(), "typescript"))
	pm := strings.ToLower(orDefault(bp.PackageManager(), "pnpm"))

	none := []FileResult{{File: "(none)", Action: "skip", Reason: fmt.Sprintf("no templates for %s-%s", language, pm)}}
	name, ok := SetName(language, pm)
	if !ok {
		return none, nil
	}
	set, ok := g.src.ConfigSet(name)
	if !ok {
		return none, nil
	}

	files, err := doublestar.Glob(set, "**/*"+templateSuffix)
	if err != nil {
		return nil, fmt.Errorf("listing config set %s: %w", name, err)
	}
	sort.Strings(files)

	vars := blueprint.Values(bp)
	var results []FileResult
	for _, file := range files {
		if info, err := fs.Stat(set, file); err != nil || info.IsDir() {
			continue
		}
		target := strings.TrimSuffix(file, templateSuffix)
		targetPath := filepath.Join(repoRoot, filepath.FromSlash(target))

		base := path.Base(target)
		if (base == "pnpm-workspace.yaml" || base == "pnpm-workspace.yml") && !bp.IsMonorepo() {
			results = append(results, FileResult{File: target, Action: "skip", Reason: "not monorepo"})
			continue
		}
		if platform.Exists(targetPath) {
			results = append(results, FileResult{File: target, Action: "skip", Reason: "exists"})
			continue
		}

		content, err := fs.ReadFile(set, file)
		if err != nil {
			return results, fmt.Errorf("reading template %s/%s: %w", name, file, err)
		}
		if !apply {
			results = append(results, FileResult{File: target, Action: "write", Mode: "dry-run"})
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return results, fmt.Errorf("creating directory for %s: %w", targetPath, err)
		}
		if err := os.WriteFile(targetPath, []byte(Render(string(content), vars)), 0o644); err != nil {
			return results, fmt.Errorf("writing %s: %w", targetPath, err)
		}
		results = append(results, FileResult{File: target, Action: "write", Mode: "applied"})
	}
	return results, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
