// Package organize runs the organize workflow: discover repositories under a
// projects root, plan their canonical locations, ask for approval and move
// them.
package organize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/d6e/git-org/internal/discovery"
	"github.com/d6e/git-org/internal/executor"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/origin"
	"github.com/d6e/git-org/internal/planner"
	"github.com/d6e/git-org/internal/ui/static"
	"github.com/d6e/git-org/internal/ui/styles"
)

// ErrNoRepositories is returned when the projects root holds no repository.
var ErrNoRepositories = errors.New("no git repos found")

// Header precedes the rendered plan.
const Header = "The proposed filesystem changes:"

// NoRepositoriesMessage is shown when the projects root holds no repository.
func NoRepositoriesMessage(root string) string {
	return fmt.Sprintf("No git repos found. Maybe change your 'projects_root'? (projects_root='%s')", root)
}

// Options configures a single organize run.
type Options struct {
	Root   string
	DryRun bool
	// Skip reports directory names that are not walked.
	Skip func(name string) bool
	// StagingDir is passed to the executor.
	StagingDir string
	// Approver is consulted unless DryRun is set.
	Approver planner.Approver
}

// Report describes what a run found and did.
type Report struct {
	Root         string
	Repositories []string
	Plan         planner.Plan
	Approved     bool
	Results      executor.Results
}

// Organizer wires the workflow's collaborators.
type Organizer struct {
	Reader origin.Reader
	Log    *log.Logger
	// Out receives the plan and the summary.
	Out io.Writer
}

// New returns an Organizer reading .git/config from disk.
func New(l *log.Logger, out io.Writer) *Organizer {
	return &Organizer{Reader: origin.GitConfigReader{}, Log: l, Out: out}
}

// Run executes the workflow. It returns ErrNoRepositories when nothing is
// found and a wrapped executor.ErrPartialFailure when some moves failed.
func (o *Organizer) Run(ctx context.Context, opts Options) (Report, error) {
	l := o.Log
	if l == nil {
		l = log.Discard()
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Report{}, fmt.Errorf("resolve projects root: %w", err)
	}
	report := Report{Root: root}
	l.Debug("using projects root", "path", root)

	repos, err := discovery.FindRepositories(ctx, root, discovery.Options{Skip: opts.Skip, Log: l})
	if err != nil {
		return report, fmt.Errorf("find repositories: %w", err)
	}
	repos = discovery.FilterNested(repos)
	report.Repositories = repos
	l.Debug("found non-nested repos", "count", len(repos))
	if len(repos) == 0 {
		return report, ErrNoRepositories
	}

	p := &planner.Planner{Reader: o.Reader, Log: l}
	report.Plan = p.Plan(root, repos)

	fmt.Fprintf(o.Out, "%s\n\n", Header)
	if len(report.Plan) == 0 {
		fmt.Fprintln(o.Out, "No repos need to be moved.")
		return report, nil
	}
	if err := planner.Render(o.Out, report.Plan); err != nil {
		return report, err
	}

	approver := opts.Approver
	if opts.DryRun || approver == nil {
		approver = planner.Deny
	}
	report.Approved, err = approver.Approve(ctx)
	if err != nil {
		return report, fmt.Errorf("approval: %w", err)
	}
	if !report.Approved {
		if opts.DryRun {
			l.Println("Dry run, nothing was moved.")
		} else {
			l.Println("Nothing was moved.")
		}
		return report, nil
	}

	e := &executor.Executor{Log: l, StagingDir: opts.StagingDir}
	report.Results = e.Execute(ctx, report.Plan)

	fmt.Fprintln(o.Out)
	fmt.Fprint(o.Out, Summary(report.Results))
	return report, report.Results.Err()
}

// Summary renders execution results as a table followed by a count line.
func Summary(results executor.Results) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := styles.FormatStatus(string(r.Status))
		detail := r.Destination
		if r.Err != nil {
			detail = r.Err.Error()
		}
		if r.StagedAt != "" {
			detail += " (left at " + r.StagedAt + ")"
		}
		rows = append(rows, []string{status, r.Source, detail})
	}

	skipped := results.Count(executor.StatusSkippedRepository) + results.Count(executor.StatusSkippedExisting)
	return static.RenderTable([]string{"STATUS", "SOURCE", "DESTINATION"}, rows) +
		fmt.Sprintf("\n%d moved, %d skipped, %d failed\n", results.Count(executor.StatusMoved), skipped, results.Failed())
}
