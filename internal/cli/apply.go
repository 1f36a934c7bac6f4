package cli

import (
	"github.com/agentx-labs/initkit/internal/pipeline"
	"github.com/agentx-labs/initkit/internal/scaffold"
	"github.com/spf13/cobra"
)

func newScaffoldCmd(a *app) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Plan or create the blueprint's directory layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Scaffold(apply)
			if err != nil {
				return err
			}
			return a.emit(res, func() {
				a.println(res.Summary)
				a.printOps(res.Plan)
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Create the planned directories and files")
	return cmd
}

func (a *app) printOps(ops []scaffold.Op) {
	for _, op := range ops {
		line := "- " + op.Op + ": " + a.pipe.Rel(op.Path)
		if op.Mode != "" {
			line += " (" + string(op.Mode) + ")"
		}
		if op.Reason != "" {
			line += " [" + op.Reason + "]"
		}
		a.println(line)
	}
}

func addArchiveFlags(cmd *cobra.Command, f *pipeline.ArchiveFlags) {
	cmd.Flags().BoolVar(&f.All, "archive", false, "Archive the Stage A docs and the blueprint into docs/project")
	cmd.Flags().BoolVar(&f.Docs, "archive-docs", false, "Archive the Stage A docs into docs/project")
	cmd.Flags().BoolVar(&f.Blueprint, "archive-blueprint", false, "Archive the blueprint into docs/project")
}

func newApplyCmd(a *app) *cobra.Command {
	var opts pipeline.ApplyOptions
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run Stage C: scaffold, configs, README, manifest, and wrapper sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Apply(cmd.Context(), opts)
			if err != nil {
				for _, w := range res.Warnings {
					a.warn(w)
				}
				return err
			}
			if a.jsonMode() {
				for _, w := range res.Warnings {
					a.log.Warn(w)
				}
				return a.printJSON(res)
			}

			for _, w := range res.Warnings {
				a.warn(w)
			}
			if !opts.SkipConfigs {
				a.println("[ok] Config files generated.")
				for _, r := range res.Configs {
					line := "  - " + r.Action + ": " + r.File
					if r.Mode != "" {
						line += " (" + r.Mode + ")"
					}
					if r.Reason != "" {
						line += " [" + r.Reason + "]"
					}
					a.println(line)
				}
			}
			if res.Readme.Op == "write" && res.Readme.Mode == scaffold.ModeApplied {
				a.println("[ok] README.md generated from blueprint.")
			} else if res.Readme.Reason != "" {
				a.println("[info] README.md: " + res.Readme.Reason)
			}
			a.printNotices(res.Notices)

			a.println("[ok] Apply completed.")
			a.println("- Blueprint: " + res.Blueprint)
			a.println("- Docs root: " + res.DocsRoot)
			if !res.StageA.OK {
				a.println("[warn] Stage A docs check had errors; consider re-running with --require-stage-a.")
			}
			if len(res.StageA.Warnings) > 0 {
				a.println("[warn] Stage A docs check has warnings; ensure TBD/TODO items are tracked.")
			}
			a.println("- Manifest updated: " + a.pipe.Rel(res.Manifest.Path))
			if res.Archive != nil {
				a.println("- Archive: " + res.Archive.Mode)
			}
			if res.PruneAgentBuilder != nil {
				a.println("- Agent workflow prune: " + res.PruneAgentBuilder.Mode)
			}
			a.println("- Wrappers synced via: " + orNone(res.Sync.Cmd, "(skipped)"))
			if res.Cleanup != nil {
				a.println("- init/ cleanup: " + res.Cleanup.Mode)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Providers, "providers", "", "Providers to sync: both, codex, claude, or codex,claude (default from config)")
	f.BoolVar(&opts.RequireStageA, "require-stage-a", false, "Fail unless the Stage A docs pass a strict check")
	f.BoolVar(&opts.SkipConfigs, "skip-configs", false, "Do not generate config files")
	f.BoolVar(&opts.SkipAgentBuilder, "skip-agent-builder", false, "Remove the agent-builder workflow before syncing (requires --i-understand)")
	f.BoolVar(&opts.CleanupInit, "cleanup-init", false, "Remove the bootstrap directory afterwards (requires --i-understand)")
	f.BoolVar(&opts.IUnderstand, "i-understand", false, "Acknowledge destructive operations")
	f.BoolVar(&opts.ForceReadme, "force-readme", false, "Overwrite an existing README.md")
	addArchiveFlags(cmd, &opts.Archive)
	return cmd
}

func newCleanupInitCmd(a *app) *cobra.Command {
	var opts pipeline.CleanupOptions
	cmd := &cobra.Command{
		Use:   "cleanup-init",
		Short: "Archive init artifacts and remove the bootstrap directory",
		Long: `Remove the bootstrap directory once initialization is done. The directory
must carry the provenance marker written by start, and the command requires
--i-understand. Without --apply only the plan is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.CleanupInit(opts)
			if err != nil {
				return err
			}
			if err := a.emit(res, func() {
				tag := "[ok]"
				if !opts.Apply {
					tag = "[plan]"
				}
				if res.Result.Op == "refuse" || res.Result.Op == "skip" {
					tag = "[info]"
					if res.Result.Op == "refuse" {
						tag = "[error]"
					}
					a.printf("%s %s: %s [%s]\n", tag, res.Result.Op, a.pipe.Rel(res.Result.Path), res.Result.Reason)
				} else {
					a.printf("%s %s: %s (%s)\n", tag, res.Result.Op, a.pipe.Rel(res.Result.Path), res.Result.Mode)
				}
				if res.Result.Note != "" {
					a.println("Note: " + res.Result.Note)
				}
				if res.Archive != nil {
					a.printf("%s archive: %s (%s)\n", tag, a.pipe.Rel(res.Archive.TargetRoot), res.Archive.Mode)
					a.printList("Warnings:", res.Archive.Errors)
				}
			}); err != nil {
				return err
			}
			if !res.OK {
				return failed()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Perform the removal")
	cmd.Flags().BoolVar(&opts.IUnderstand, "i-understand", false, "Acknowledge that the bootstrap directory will be deleted")
	addArchiveFlags(cmd, &opts.Archive)
	return cmd
}

func newPruneAgentBuilderCmd(a *app) *cobra.Command {
	var opts pipeline.PruneOptions
	cmd := &cobra.Command{
		Use:   "prune-agent-builder",
		Short: "Remove the agent-builder workflow and re-sync wrappers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.PruneAgentBuilder(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.emit(res, func() {
				switch {
				case res.Prune.Op == "skip":
					a.println("[info] Agent Builder directory not found; nothing to remove")
					a.println("  Path: " + a.pipe.Rel(res.Prune.Path))
				case !opts.Apply:
					a.printf("[plan] %s: %s (%s)\n", res.Prune.Op, a.pipe.Rel(res.Prune.Path), res.Prune.Mode)
					if res.SyncPlanned {
						a.println("[plan] Will re-sync wrappers after removal")
					}
				default:
					a.printf("[ok] %s: %s (%s)\n", res.Prune.Op, a.pipe.Rel(res.Prune.Path), res.Prune.Mode)
					if res.Sync != nil {
						a.println("[ok] Wrappers sync: " + orNone(res.Sync.Mode, res.Sync.Op))
					}
				}
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Perform the removal")
	cmd.Flags().BoolVar(&opts.IUnderstand, "i-understand", false, "Acknowledge that the workflow will be deleted")
	cmd.Flags().BoolVar(&opts.SyncAfter, "sync-after", true, "Re-sync wrappers after removal")
	cmd.Flags().StringVar(&opts.Providers, "providers", "", "Providers to sync: both, codex, claude, or codex,claude (default from config)")
	return cmd
}
