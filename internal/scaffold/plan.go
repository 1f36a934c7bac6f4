package scaffold

import (
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/blueprint"
)

const (
	frontendReadme = "This folder is a scaffold placeholder. Populate it based on your selected frontend stack.\n"
	backendReadme  = "This folder is a scaffold placeholder. Populate it based on your selected backend stack.\n"
	sharedReadme   = "# Shared package\n\nThis folder is a scaffold placeholder for shared types/utilities.\n"
)

// Plan computes the directory skeleton for bp under repoRoot. With apply
// false the same plan is returned in dry-run mode and nothing is touched.
func Plan(repoRoot string, bp *blueprint.Blueprint, apply bool) ([]Op, error) {
	p := &planner{apply: apply}
	frontend := bp.Capability("frontend").Enabled
	backend := bp.Capability("backend").Enabled

	p.dir(filepath.Join(repoRoot, "docs"))

	if bp.IsMonorepo() {
		apps := filepath.Join(repoRoot, "apps")
		pkgs := filepath.Join(repoRoot, "packages")
		p.dir(apps)
		p.dir(pkgs)
		if frontend {
			p.dir(filepath.Join(apps, "frontend"))
			p.file(filepath.Join(apps, "frontend", "README.md"), []byte("# Frontend app\n\n"+frontendReadme))
		}
		if backend {
			p.dir(filepath.Join(apps, "backend"))
			p.file(filepath.Join(apps, "backend", "README.md"), []byte("# Backend app\n\n"+backendReadme))
		}
		p.dir(filepath.Join(pkgs, "shared"))
		p.file(filepath.Join(pkgs, "shared", "README.md"), []byte(sharedReadme))
	} else {
		src := filepath.Join(repoRoot, "src")
		p.dir(src)
		if frontend {
			p.dir(filepath.Join(src, "frontend"))
			p.file(filepath.Join(src, "frontend", "README.md"), []byte("# Frontend\n\n"+frontendReadme))
		}
		if backend {
			p.dir(filepath.Join(src, "backend"))
			p.file(filepath.Join(src, "backend", "README.md"), []byte("# Backend\n\n"+backendReadme))
		}
	}
	return p.ops, p.err
}
