package configgen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentx-labs/initkit/internal/blueprint"
	"github.com/agentx-labs/initkit/internal/platform"
	"github.com/agentx-labs/initkit/internal/scaffold"
	"github.com/agentx-labs/initkit/internal/templates"
)

type commands struct {
	install, dev, test string
}

var pmCommands = map[string]commands{
	"pnpm":   {"pnpm install", "pnpm dev", "pnpm test"},
	"npm":    {"npm install", "npm run dev", "npm test"},
	"yarn":   {"yarn", "yarn dev", "yarn test"},
	"pip":    {"pip install -r requirements.txt", "python main.py", "pytest"},
	"poetry": {"poetry install", "poetry run python main.py", "poetry run pytest"},
	"go":     {"go mod download", "go run .", "go test ./..."},
}

const monorepoStructure = `├── apps/
│   ├── frontend/       # Frontend application
│   └── backend/        # Backend services
├── packages/
│   └── shared/         # Shared libraries
├── .ai/skills/         # AI skills (SSOT)
├── docs/               # Documentation
└── ops/                # DevOps configuration`

const singleStructure = `├── src/
│   ├── frontend/       # Frontend code
│   └── backend/        # Backend code
├── .ai/skills/         # AI skills (SSOT)
├── docs/               # Documentation
└── ops/                # DevOps configuration`

var (
	leftoverBlock = regexp.MustCompile(`(?s)\{\{#(\w+)\}\}.*?\{\{/(\w+)\}\}`)
	leftoverToken = regexp.MustCompile(`\{\{\w+\}\}`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// GenerateReadme renders README.md in repoRoot from the README template.
// An existing README is skipped unless force is set.
func (g *Generator) GenerateReadme(repoRoot string, bp *blueprint.Blueprint, apply, force bool) (scaffold.Op, error) {
	readmePath := filepath.Join(repoRoot, "README.md")
	tmpl, err := g.src.ReadFile(templates.Readme)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return scaffold.Op{Op: "write", Path: readmePath, Mode: scaffold.ModeSkip, Reason: "template not found"}, nil
		}
		return scaffold.Op{}, err
	}
	if platform.Exists(readmePath) && !force {
		return scaffold.Op{Op: "write", Path: readmePath, Mode: scaffold.ModeSkip, Reason: "exists (use --force-readme to overwrite)"}, nil
	}

	content := RenderReadme(string(tmpl), bp)
	if !apply {
		return scaffold.Op{Op: "write", Path: readmePath, Mode: scaffold.ModeDryRun}, nil
	}
	if err := os.WriteFile(readmePath, []byte(content), 0o644); err != nil {
		return scaffold.Op{}, fmt.Errorf("writing %s: %w", readmePath, err)
	}
	return scaffold.Op{Op: "write", Path: readmePath, Mode: scaffold.ModeApplied}, nil
}

// RenderReadme fills the README template from bp.
func RenderReadme(tmpl string, bp *blueprint.Blueprint) string {
	language := orDefault(bp.Language(), "typescript")
	pm := orDefault(bp.PackageManager(), "pnpm")

	out := tmpl
	replace := func(key, value string) {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	block := func(key, value string, show bool) {
		re := regexp.MustCompile(`(?s)\{\{#` + key + `\}\}(.*?)\{\{/` + key + `\}\}`)
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			if !show || value == "" {
				return ""
			}
			inner := re.FindStringSubmatch(m)[1]
			return strings.ReplaceAll(inner, "{{"+key+"}}", value)
		})
	}

	replace("PROJECT_NAME", orDefault(bp.ProjectName(), "my-project"))
	replace("PROJECT_DESCRIPTION", orDefault(bp.ProjectDescription(), "Project description"))
	replace("LANGUAGE", language)
	replace("PACKAGE_MANAGER", pm)
	replace("REPO_LAYOUT", orDefault(bp.Layout(), "single"))

	frontend := bp.Capability("frontend")
	backend := bp.Capability("backend")
	database := bp.Capability("database")
	api := bp.Capability("api")
	block("DOMAIN", bp.Domain(), bp.Domain() != "")
	block("FRONTEND_FRAMEWORK", frontend.Framework, frontend.Enabled)
	block("BACKEND_FRAMEWORK", backend.Framework, backend.Enabled)
	block("DATABASE_KIND", database.Kind, database.Enabled)
	block("API_STYLE", api.Style, api.Style != "")

	lang := strings.ToLower(bp.Language())
	block("IS_NODE", "true", lang == "typescript" || lang == "javascript")
	block("IS_PYTHON", "true", lang == "python")
	block("IS_GO", "true", lang == "go")

	cmds, ok := pmCommands[pm]
	if !ok {
		cmds = pmCommands["pnpm"]
	}
	replace("INSTALL_COMMAND", cmds.install)
	replace("DEV_COMMAND", cmds.dev)
	replace("TEST_COMMAND", cmds.test)

	if bp.IsMonorepo() {
		replace("PROJECT_STRUCTURE", monorepoStructure)
	} else {
		replace("PROJECT_STRUCTURE", singleStructure)
	}

	out = leftoverBlock.ReplaceAllString(out, "")
	out = leftoverToken.ReplaceAllString(out, "")
	return blankRuns.ReplaceAllString(out, "\n\n")
}
