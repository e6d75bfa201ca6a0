package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/d6e/git-org/internal/config"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/organize"
	"github.com/d6e/git-org/internal/output"
	"github.com/d6e/git-org/internal/planner"
	"github.com/d6e/git-org/internal/ui/prompt"
)

func newOrganizeCmd(e *env) *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "organize [projects_root]",
		Short: "Move repositories to the paths derived from their origin",
		Args:  cobra.MaximumNArgs(1),
		Long: `Find every git repository under projects_root and move it to
<projects_root>/<host>/<path> as derived from its origin URL.

Nested repositories move along with their parent. Repositories without an
origin, or whose origin is a local path, are left alone. The proposed moves
are printed and nothing happens until they are accepted.

projects_root defaults to the configured projects_root, then the current
directory.`,
		Example: `  git-org organize ~/src        # Propose moves and ask
  git-org organize ~/src -d     # Only print the proposed moves
  git-org organize -y           # Move without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var flagRoot string
			if len(args) > 0 {
				flagRoot = args[0]
			}

			var approver planner.Approver = prompt.NewApproval(e.stdin, out.Styled())
			if yes {
				approver = planner.Allow
			}

			o := organize.New(l, out.Styled())
			report, err := o.Run(ctx, organize.Options{
				Root:       cfg.ResolveRoot(flagRoot, e.workDir),
				DryRun:     dryRun,
				Skip:       cfg.Organize.Skipped,
				StagingDir: cfg.Organize.StagingDir,
				Approver:   approver,
			})
			if errors.Is(err, organize.ErrNoRepositories) {
				out.Println(organize.NoRepositoriesMessage(report.Root))
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print the proposed changes without moving anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept the proposed changes without asking")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "yes")

	return cmd
}
