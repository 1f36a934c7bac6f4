package cli

import (
	"errors"
	"strings"

	"github.com/agentx-labs/initkit/internal/state"
	"github.com/spf13/cobra"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Seed the Stage A templates and create the init state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Start()
			if err != nil {
				return err
			}
			return a.emit(res, func() {
				for _, w := range res.Warnings {
					a.warn(w)
				}
				if len(res.Created) > 0 {
					a.println("[ok] Init templates created:")
					for _, op := range res.Created {
						a.println("  - " + a.pipe.Rel(op.Path))
					}
				} else {
					a.println("[info] Init templates already exist")
				}

				if res.Existing {
					a.println("[info] Existing init state detected")
					a.println(a.statusPanel(res.Progress))
					a.printf("[info] To restart, delete %s first\n", a.pipe.Rel(res.StatePath))
					return
				}
				a.println("[ok] Init state created: " + a.pipe.Rel(res.StatePath))
				a.println(a.statusPanel(res.Progress))
			})
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline progress and next steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Status()
			if err != nil {
				return err
			}
			if a.jsonMode() {
				if res.Progress == nil {
					return a.printJSON(res)
				}
				return a.printJSON(res.Progress)
			}
			for _, w := range res.Warnings {
				a.warn(w)
			}
			if res.Progress == nil {
				a.println("[info] No init state detected")
				a.println(`[info] Run "start" to begin initialization`)
				return nil
			}
			a.println(a.statusPanel(*res.Progress))
			return nil
		},
	}
}

func newAdvanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Report the checkpoint for the current stage",
		Long: `Check that the current stage's gate is met and print what the user
must confirm before approving it. Advance never changes state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Advance()
			if err != nil {
				return err
			}
			return a.emit(res, func() {
				if res.Complete {
					a.println("[info] Initialization complete")
					return
				}
				a.printf("\n== %s ==\n\n", res.Title)
				for _, l := range res.Lines {
					a.println(l)
				}
				if res.Stage == state.C {
					a.println("\nIf confirmed, run the following to finish initialization:")
				} else {
					a.println("\nIf confirmed, run the following to approve and advance:")
				}
				a.println("  " + command(res.Command))
				if res.Optional != "" {
					a.println("\n" + res.Optional)
				}
			})
		},
	}
}

func newApproveCmd(a *app) *cobra.Command {
	var stageArg string
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Record the user's approval of a stage and advance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, ok := state.ParseStage(strings.TrimSpace(stageArg))
			if !ok || stage == state.Complete {
				return errors.New("--stage is required. Valid values: A, B, C")
			}
			res, err := a.pipe.Approve(stage)
			if err != nil {
				return err
			}
			return a.emit(res, func() {
				a.printf("[ok] Stage %s approved\n", res.Approved)
				if res.Stage != state.Complete {
					a.printf("[ok] Advanced to Stage %s - %s\n", res.Stage, res.Stage.Name())
					next := "run apply to create the scaffold"
					if res.Stage == state.B {
						next = "create " + a.pipe.Rel(a.pipe.Env().BlueprintPath)
					}
					a.println("\nNext: " + next)
					return
				}
				a.println("[ok] Initialization complete!")
				if res.AgentBuilderPresent {
					a.println("\n" + agentBuilderPanel())
				}
				a.println("\nOptional: run " + command("cleanup-init", "--apply", "--i-understand", "--archive") + " to archive and remove init/.")
			})
		},
	}
	cmd.Flags().StringVar(&stageArg, "stage", "", "Stage to approve: A, B, or C")
	return cmd
}
