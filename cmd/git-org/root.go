package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/d6e/git-org/internal/clone"
	"github.com/d6e/git-org/internal/config"
	"github.com/d6e/git-org/internal/git"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/output"
)

// env is the state shared by all commands.
type env struct {
	cfg     *config.Config
	workDir string

	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	// git performs clones; replaced in tests.
	git clone.GitCloner

	verbose bool
	quiet   bool
}

// newRootCmd builds the command tree around e.
func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "git-org",
		Short: "Organize git repositories by their origin URL",
		Long: `git-org keeps a projects directory laid out like the remotes it mirrors.

Every repository is placed at <projects_root>/<host>/<path>, derived from its
origin URL: git@github.com:d6e/git-org.git lives in
<projects_root>/github.com/d6e/git-org.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if e.verbose && e.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			// Logger and printer depend on the parsed flags.
			ctx := cmd.Context()
			ctx = log.WithLogger(ctx, log.New(e.stderr, e.verbose, e.quiet))
			ctx = output.WithPrinter(ctx, e.stdout)
			ctx = config.WithConfig(ctx, e.cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetIn(e.stdin)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Show debug output and external commands")
	root.PersistentFlags().BoolVarP(&e.quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(newOrganizeCmd(e))
	root.AddCommand(newCloneCmd(e))
	root.AddCommand(newListCmd(e))
	root.AddCommand(newConfigCmd(e))

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-org: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e := &env{
		cfg:     &loaded,
		workDir: workDir,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		git:     git.CLI{},
	}

	if err := newRootCmd(e).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'git-org -h' for help")
		cancel()
		os.Exit(1)
	}
}
