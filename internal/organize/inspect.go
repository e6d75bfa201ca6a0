package organize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/d6e/git-org/internal/discovery"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/origin"
	"github.com/d6e/git-org/internal/urlpath"
)

// Placement describes where a repository is relative to its canonical path.
type Placement string

const (
	Placed     Placement = "placed"
	Misplaced  Placement = "misplaced"
	NoOrigin   Placement = "no-origin"
	Local      Placement = "local"
	Unreadable Placement = "unreadable"
)

// Entry is one repository found under the projects root.
type Entry struct {
	Repository  string    `json:"repository"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Status      Placement `json:"status"`
}

// Inspect reports every non-nested repository under root and whether it is
// at its canonical path. Nothing is moved and no warnings are logged for
// missing origins.
func (o *Organizer) Inspect(ctx context.Context, root string, skip func(string) bool) ([]Entry, error) {
	l := o.Log
	if l == nil {
		l = log.Discard()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve projects root: %w", err)
	}

	repos, err := discovery.FindRepositories(ctx, abs, discovery.Options{Skip: skip, Log: l})
	if err != nil {
		return nil, fmt.Errorf("find repositories: %w", err)
	}
	repos = discovery.FilterNested(repos)

	entries := make([]Entry, 0, len(repos))
	for _, repo := range repos {
		entries = append(entries, o.inspect(abs, repo))
	}
	return entries, nil
}

func (o *Organizer) inspect(root, repo string) Entry {
	e := Entry{Repository: repo}

	store, err := o.Reader.Read(repo)
	if err != nil {
		e.Status = Unreadable
		return e
	}

	url, ok := origin.Extract(store, repo, log.Discard())
	if !ok {
		e.Status = NoOrigin
		return e
	}
	e.Origin = url

	if urlpath.IsLocal(url) {
		e.Status = Local
		return e
	}

	e.Destination = urlpath.Normalize(root, url)
	if e.Destination == repo {
		e.Status = Placed
	} else {
		e.Status = Misplaced
	}
	return e
}

// entrySource adapts entries to fuzzy.Source. Both the path and the origin
// are searchable.
type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Repository + " " + s[i].Origin }
func (s entrySource) Len() int            { return len(s) }

// Filter returns the entries fuzzily matching query, best match first.
// An empty query returns entries unchanged.
func Filter(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
