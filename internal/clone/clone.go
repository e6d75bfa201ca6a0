// Package clone clones a remote repository straight into its canonical
// location under the projects root.
package clone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/d6e/git-org/internal/executor"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/urlpath"
)

var (
	// ErrDestinationExists is returned when the canonical path is taken.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrLocalURL is returned for local paths, which have no canonical
	// location under the projects root.
	ErrLocalURL = errors.New("url is a local path")
)

// GitCloner performs the actual clone.
type GitCloner interface {
	Clone(ctx context.Context, url, dest, branch string) error
}

// Options configures a single clone.
type Options struct {
	Root   string
	URL    string
	Branch string
}

// Cloner clones repositories into the projects tree.
type Cloner struct {
	Git GitCloner
	Log *log.Logger
}

// Destination returns the canonical clone path for opts.
func Destination(opts Options) (string, error) {
	if urlpath.IsLocal(opts.URL) {
		return "", fmt.Errorf("%w: %s", ErrLocalURL, opts.URL)
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return "", fmt.Errorf("resolve projects root: %w", err)
	}
	return urlpath.Normalize(root, opts.URL), nil
}

// Clone clones opts.URL into its canonical path under opts.Root and returns
// that path. An existing destination is never touched.
func (c *Cloner) Clone(ctx context.Context, opts Options) (string, error) {
	l := c.Log
	if l == nil {
		l = log.Discard()
	}

	dest, err := Destination(opts)
	if err != nil {
		return "", err
	}

	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat destination: %w", err)
	}

	if err := executor.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", err
	}

	l.Debug("cloning repo", "url", opts.URL, "dest", dest, "branch", opts.Branch)
	if err := c.Git.Clone(ctx, opts.URL, dest, opts.Branch); err != nil {
		return "", err
	}
	return dest, nil
}
