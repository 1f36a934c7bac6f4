package cli

import (
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the project blueprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.Validate()
			if err != nil {
				return err
			}
			if err := a.emit(res, func() {
				a.printNotices(res.Notices)
				a.printResult(res.Summary, res.Errors, res.Warnings)
			}); err != nil {
				return err
			}
			if !res.OK {
				return failed()
			}
			return nil
		},
	}
}

func newCheckDocsCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check-docs",
		Short: "Check the Stage A requirement documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.CheckDocs(strict)
			if err != nil {
				return err
			}
			if err := a.emit(res, func() {
				a.printNotices(res.Notices)
				a.printResult(res.Summary, res.Errors, res.Warnings)
			}); err != nil {
				return err
			}
			if !res.OK {
				return failed()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings as well as errors")
	return cmd
}

func newSuggestPacksCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "suggest-packs",
		Short: "Compare blueprint skill packs with the recommended set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipe.SuggestPacks(write)
			if err != nil {
				return err
			}
			if err := a.emit(res, func() {
				a.printNotices(res.Notices)
				a.printResult(res.Summary, res.Errors, res.Warnings)
			}); err != nil {
				return err
			}
			if !res.OK {
				return failed()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Add missing recommended packs to blueprint.skills.packs")
	return cmd
}
