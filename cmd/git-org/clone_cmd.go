package main

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/d6e/git-org/internal/clone"
	"github.com/d6e/git-org/internal/config"
	"github.com/d6e/git-org/internal/git"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/output"
	"github.com/d6e/git-org/internal/ui/progress"
)

func newCloneCmd(e *env) *cobra.Command {
	var (
		projectsRoot string
		branch       string
		copyPath     bool
	)

	cmd := &cobra.Command{
		Use:   "clone <url>",
		Short: "Clone a repository into its canonical path",
		Args:  cobra.ExactArgs(1),
		Long: `Clone a repository to <projects_root>/<host>/<path>, derived from the URL.

Missing parent directories are created. Cloning fails without touching
anything if the destination already exists.`,
		Example: `  git-org clone git@github.com:d6e/git-org.git
  git-org clone https://github.com/rust-lang/rust.git -p ~/src
  git-org clone git@github.com:d6e/git-org.git -b develop --copy`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := e.git.(git.CLI); ok {
				return git.CheckGit()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if branch == "" {
				branch = cfg.Clone.Branch
			}
			opts := clone.Options{
				Root:   cfg.ResolveRoot(projectsRoot, e.workDir),
				URL:    args[0],
				Branch: branch,
			}

			// The spinner would interleave with verbose command logging.
			var sp *progress.Spinner
			if f, ok := e.stderr.(*os.File); ok && !l.IsVerbose() && !e.quiet {
				sp = progress.NewSpinner(f, "Cloning "+opts.URL)
				sp.Start()
			}

			dest, err := (&clone.Cloner{Git: e.git, Log: l}).Clone(ctx, opts)
			if sp != nil {
				sp.Stop()
			}
			if err != nil {
				return err
			}

			out.Printf("The repo '%s' has been cloned to '%s'.\n", opts.URL, dest)

			if copyPath {
				if err := clipboard.WriteAll(dest); err != nil {
					l.Warnf("could not copy path to clipboard: %v", err)
				} else {
					l.Printf("Copied %s to the clipboard\n", dest)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectsRoot, "projects_root", "p", "", "Root to clone under (default: configured projects_root or current directory)")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to check out (default: clone.branch from config, else the remote HEAD)")
	cmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the destination path to the clipboard")

	return cmd
}
