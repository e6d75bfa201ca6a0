// Package planner turns discovered repositories into a plan of directory
// moves and gates that plan behind an approval step.
package planner

import (
	"context"
	"fmt"
	"io"

	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/origin"
	"github.com/d6e/git-org/internal/urlpath"
)

// Change is one proposed relocation.
type Change struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// String formats the change as "source -> destination".
func (c Change) String() string {
	return c.Source + " -> " + c.Destination
}

// Plan is an ordered list of changes, in discovery order.
type Plan []Change

// WithoutNoops returns the changes whose source differs from the destination.
func (p Plan) WithoutNoops() Plan {
	out := make(Plan, 0, len(p))
	for _, c := range p {
		if c.Source != c.Destination {
			out = append(out, c)
		}
	}
	return out
}

// Planner derives the canonical destination of each repository from its
// origin URL.
type Planner struct {
	Reader origin.Reader
	Log    *log.Logger
}

// New returns a Planner reading .git/config from disk.
func New(l *log.Logger) *Planner {
	return &Planner{Reader: origin.GitConfigReader{}, Log: l}
}

// Plan builds the plan for repos under root. Repositories whose config
// cannot be read, that have no origin, or whose origin is a local path are
// warned about and left out. Repositories already in place are dropped.
func (p *Planner) Plan(root string, repos []string) Plan {
	l := p.Log
	if l == nil {
		l = log.Discard()
	}

	var plan Plan
	for _, repo := range repos {
		store, err := p.Reader.Read(repo)
		if err != nil {
			l.Warnf("Could not read the git config of '%s': %v", repo, err)
			continue
		}

		url, ok := origin.Extract(store, repo, l)
		if !ok {
			continue
		}

		if urlpath.IsLocal(url) {
			l.Warnf("The url '%s' for repo '%s' is a local path. Not going to do anything.", url, repo)
			continue
		}

		dst := urlpath.Normalize(root, url)
		l.Debug("planned", "repo", repo, "origin", url, "destination", dst)
		plan = append(plan, Change{Source: repo, Destination: dst})
	}
	return plan.WithoutNoops()
}

// Render writes one "source -> destination" line per change.
func Render(w io.Writer, plan Plan) error {
	for _, c := range plan {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// Approver decides whether a rendered plan may be executed.
type Approver interface {
	Approve(ctx context.Context) (bool, error)
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context) (bool, error)

// Approve calls f(ctx).
func (f ApproverFunc) Approve(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Deny rejects every plan. Used for dry runs.
var Deny Approver = ApproverFunc(func(context.Context) (bool, error) {
	return false, nil
})

// Allow accepts every plan.
var Allow Approver = ApproverFunc(func(context.Context) (bool, error) {
	return true, nil
})
