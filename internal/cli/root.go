package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agentx-labs/initkit/internal/branding"
	"github.com/agentx-labs/initkit/internal/config"
	"github.com/agentx-labs/initkit/internal/integrations"
	"github.com/agentx-labs/initkit/internal/logging"
	"github.com/agentx-labs/initkit/internal/pipeline"
	"github.com/agentx-labs/initkit/internal/state"
	"github.com/agentx-labs/initkit/internal/templates"
	"github.com/spf13/cobra"
)

// BuildInfo is injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ExitError reports a failure that has already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

func failed() error { return &ExitError{Code: 1} }

const (
	formatText = "text"
	formatJSON = "json"
)

// app carries the per-invocation settings shared by every command.
type app struct {
	build BuildInfo

	repoRoot  string
	format    string
	blueprint string
	docsRoot  string
	logLevel  string

	cfg    *config.Config
	log    *slog.Logger
	pipe   *pipeline.Pipeline
	syncer integrations.Syncer

	out    io.Writer
	errOut io.Writer
}

// NewRootCmd builds the command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	return newRootCmd(&app{build: build})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` walks a repository through three human-gated stages:
requirements docs (A), a project blueprint (B), and the scaffold (C).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.repoRoot, "repo-root", "", "Repository root (default: current directory)")
	pf.StringVar(&a.format, "format", formatText, "Output format: text or json")
	pf.StringVar(&a.blueprint, "blueprint", "", "Blueprint path, relative to the repo root")
	pf.StringVar(&a.docsRoot, "docs-root", "", "Stage A docs directory, relative to the repo root")
	pf.StringVar(&a.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")

	root.AddCommand(
		newStartCmd(a),
		newStatusCmd(a),
		newAdvanceCmd(a),
		newApproveCmd(a),
		newValidateCmd(a),
		newCheckDocsCmd(a),
		newSuggestPacksCmd(a),
		newScaffoldCmd(a),
		newApplyCmd(a),
		newCleanupInitCmd(a),
		newPruneAgentBuilderCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves the repo root, layers configuration, and builds the
// pipeline for the command about to run.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()
	state.ToolVersion = a.build.Version

	root := a.repoRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving repo root %s: %w", a.repoRoot, err)
	}
	a.repoRoot = root

	a.cfg = config.New()
	if err := a.cfg.LoadRepoFile(root); err != nil {
		return err
	}
	flags := cmd.Flags()
	for flag, key := range map[string]string{
		"format":    config.KeyFormat,
		"blueprint": config.KeyBlueprint,
		"docs-root": config.KeyDocsRoot,
		"log-level": config.KeyLogLevel,
	} {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			a.cfg.Override(key, v)
		}
	}

	a.format = a.cfg.Get(config.KeyFormat)
	if a.format != formatText && a.format != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", a.format)
	}

	a.log, err = logging.New(a.errOut, a.cfg.Get(config.KeyLogLevel))
	if err != nil {
		return err
	}

	src := templates.Embedded()
	if dir := a.cfg.Get(config.KeyTemplatesDir); dir != "" {
		if src, err = templates.New(config.ResolvePath(root, dir)); err != nil {
			return err
		}
	}

	syncer := a.syncer
	if syncer == nil {
		runner := integrations.NewExec(a.cfg.Get(config.KeySyncCommand), a.log)
		if a.format == formatJSON {
			// Keep stdout a single JSON document.
			runner.Stdout = a.errOut
		}
		syncer = runner
	}

	a.pipe = pipeline.New(pipeline.Env{
		RepoRoot:      root,
		BootstrapDir:  a.cfg.Path(root, config.KeyBootstrapDir),
		DocsRoot:      a.cfg.Path(root, config.KeyDocsRoot),
		BlueprintPath: a.cfg.Path(root, config.KeyBlueprint),
		Providers:     a.cfg.Get(config.KeyProviders),
		Templates:     src,
		Syncer:        syncer,
		Logger:        a.log,
	})
	a.log.Debug("configured", "repoRoot", root, "config", config.FilePath(root))
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	return NewRootCmd(BuildInfo{Version: version, Commit: commit, Date: date}).Execute()
}
