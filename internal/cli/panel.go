package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/initkit/internal/state"
	"github.com/charmbracelet/lipgloss"
)

var (
	panelTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	panelHead  = lipgloss.NewStyle().Bold(true)
	panelBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	warnTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB347"))
)

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func labelled(ok bool, yes, no string) string {
	if ok {
		return "✓ " + yes
	}
	return "✗ " + no
}

// statusPanel renders progress and the next steps for the current stage.
func (a *app) statusPanel(p state.Summary) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	b.WriteString(panelTitle.Render("Init Status") + "\n\n")
	line("Current stage: Stage %s - %s", p.Stage, p.Stage.Name())

	if p.Stage == state.A || p.Stage == state.B || p.Stage == state.C {
		line("")
		line("%s", panelHead.Render("Stage A Progress:"))
		line("  Must-ask: %d/%d complete", p.StageA.MustAskAnswered, p.StageA.MustAskTotal)
		line("  Docs written: %d/%d complete", p.StageA.DocsWritten, p.StageA.DocsTotal)
		line("  Validation: %s", labelled(p.StageA.Validated, "validated", "not validated"))
		line("  User approval: %s", labelled(p.StageA.UserApproved, "approved", "not approved"))
	}
	if p.Stage == state.B || p.Stage == state.C {
		line("")
		line("%s", panelHead.Render("Stage B Progress:"))
		line("  Drafted: %s", mark(p.StageB.Drafted))
		line("  Validated: %s", mark(p.StageB.Validated))
		line("  Packs reviewed: %s", mark(p.StageB.PacksReviewed))
		line("  User approval: %s", mark(p.StageB.UserApproved))
	}
	if p.Stage == state.C || p.Stage == state.Complete {
		line("")
		line("%s", panelHead.Render("Stage C Progress:"))
		line("  Scaffold applied: %s", mark(p.StageC.ScaffoldApplied))
		line("  Configs generated: %s", mark(p.StageC.ConfigsGenerated))
		line("  Manifest updated: %s", mark(p.StageC.ManifestUpdated))
		line("  Wrappers synced: %s", mark(p.StageC.WrappersSynced))
	}

	line("")
	line("%s", panelHead.Render("Next steps:"))
	for _, s := range a.nextSteps(p) {
		line("  %s", s)
	}
	return panelBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *app) nextSteps(p state.Summary) []string {
	env := a.pipe.Env()
	docs := env.DocsRoot
	bp := env.BlueprintPath
	switch p.Stage {
	case state.A:
		if !p.StageA.Validated {
			return []string{
				"1. Complete the interview and draft the docs",
				"2. Run: " + command("check-docs", "--docs-root", a.pipe.Rel(docs)),
			}
		}
		if !p.StageA.UserApproved {
			return []string{"Ask the user to review Stage A docs", "After approval run: " + command("approve", "--stage", "A")}
		}
	case state.B:
		if !p.StageB.Validated {
			return []string{
				"1. Create " + a.pipe.Rel(bp),
				"2. Run: " + command("validate", "--blueprint", a.pipe.Rel(bp)),
			}
		}
		if !p.StageB.UserApproved {
			return []string{"Ask the user to review the blueprint", "After approval run: " + command("approve", "--stage", "B")}
		}
	case state.C:
		if !p.StageC.WrappersSynced {
			return []string{"Run: " + command("apply", "--blueprint", a.pipe.Rel(bp))}
		}
		if !p.StageC.UserApproved {
			return []string{"Initialization ready for review", "After approval run: " + command("approve", "--stage", "C")}
		}
	case state.Complete:
		return []string{"Initialization complete!"}
	}
	return nil
}

func agentBuilderPanel() string {
	body := strings.Join([]string{
		warnTitle.Render("Agent Builder Pack Detected"),
		"",
		"Found .ai/skills/workflows/agent.",
		"Agent Builder is a large workflow for building agents.",
		"",
		"If your project does not need agents, consider removing",
		"it to reduce repo size and sync time.",
		"",
		"Removal command:",
		"  " + command("prune-agent-builder", "--repo-root", ".", "--apply", "--i-understand"),
		"",
		"Or keep it for future use.",
	}, "\n")
	return panelBox.Render(body)
}
