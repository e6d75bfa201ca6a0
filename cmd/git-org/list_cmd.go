package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/d6e/git-org/internal/config"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/organize"
	"github.com/d6e/git-org/internal/output"
	"github.com/d6e/git-org/internal/ui/static"
	"github.com/d6e/git-org/internal/ui/styles"
)

func newListCmd(e *env) *cobra.Command {
	var (
		projectsRoot string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Short:   "List repositories and whether they are in place",
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		Long: `List every repository under projects_root with its origin and status.

Statuses:
  placed      already at its canonical path
  misplaced   organize would move it
  no-origin   has no origin remote
  local       origin is a local path
  unreadable  .git/config could not be read

An optional query fuzzy-matches against path and origin.`,
		Example: `  git-org list                 # All repositories
  git-org list rust            # Fuzzy filter
  git-org list -p ~/src --json # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, err := filepath.Abs(cfg.ResolveRoot(projectsRoot, e.workDir))
			if err != nil {
				return err
			}

			entries, err := organize.New(l, out.Styled()).Inspect(ctx, root, cfg.Organize.Skipped)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				entries = organize.Filter(entries, args[0])
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				l.Println("No repositories found.")
				return nil
			}
			out.Print(static.RenderTable([]string{"STATUS", "REPOSITORY", "ORIGIN", "DESTINATION"}, listRows(root, entries)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectsRoot, "projects_root", "p", "", "Root to list (default: configured projects_root or current directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// listRows formats entries with paths relative to root. The destination is
// only shown for repositories organize would move.
func listRows(root string, entries []organize.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, en := range entries {
		dest := ""
		if en.Status == organize.Misplaced {
			dest = relTo(root, en.Destination)
		}
		rows = append(rows, []string{
			styles.FormatStatus(string(en.Status)),
			relTo(root, en.Repository),
			en.Origin,
			dest,
		})
	}
	return rows
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
