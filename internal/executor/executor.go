// Package executor applies a relocation plan to the filesystem.
//
// Each change is applied independently: a failed entry is reported and the
// remaining entries still run. Moves go through a staging directory so a
// destination nested inside its own source can be reached, and a failure
// between the two renames leaves the data in a known, recoverable place.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/d6e/git-org/internal/discovery"
	"github.com/d6e/git-org/internal/log"
	"github.com/d6e/git-org/internal/planner"
)

// ErrPartialFailure is returned when at least one change failed.
var ErrPartialFailure = errors.New("some repositories could not be moved")

// Status is the outcome of a single change.
type Status string

const (
	StatusMoved             Status = "moved"
	StatusSkippedRepository Status = "skipped (repo exists)"
	StatusSkippedExisting   Status = "skipped (path exists)"
	StatusFailed            Status = "failed"
)

// Result records what happened to one change.
type Result struct {
	planner.Change
	Status Status
	Err    error
	// StagedAt is set when the repository was left in the staging directory
	// after both the final move and the restore failed.
	StagedAt string
}

// Results is the outcome of an Execute call, in plan order.
type Results []Result

// Failed returns the number of failed changes.
func (rs Results) Failed() int {
	n := 0
	for _, r := range rs {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Count returns the number of results with the given status.
func (rs Results) Count(s Status) int {
	n := 0
	for _, r := range rs {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Err returns ErrPartialFailure if any change failed.
func (rs Results) Err() error {
	if n := rs.Failed(); n > 0 {
		return fmt.Errorf("%w (%d of %d)", ErrPartialFailure, n, len(rs))
	}
	return nil
}

// Executor moves repositories according to a plan.
type Executor struct {
	Log *log.Logger
	// StagingDir holds in-flight moves. Empty means the source's parent.
	StagingDir string
}

// Execute applies each change in order. Cancelling ctx stops before the
// next change; the remaining entries are reported as failed.
func (e *Executor) Execute(ctx context.Context, plan planner.Plan) Results {
	l := e.Log
	if l == nil {
		l = log.Discard()
	}

	results := make(Results, 0, len(plan))
	for _, c := range plan {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Change: c, Status: StatusFailed, Err: err})
			continue
		}

		r := e.apply(c, l)
		if r.Status == StatusFailed {
			l.Warnf("Failed to move '%s' to '%s': %v", c.Source, c.Destination, r.Err)
			if r.StagedAt != "" {
				l.Warnf("The repo '%s' was left at '%s'", c.Source, r.StagedAt)
			}
		}
		results = append(results, r)
	}
	return results
}

func (e *Executor) apply(c planner.Change, l *log.Logger) Result {
	src, dst := c.Source, c.Destination
	parent := filepath.Dir(dst)

	// Creating the parent now would put it inside the source and move it
	// along with the repository. It is created after staging instead.
	if !within(dst, src) {
		if err := EnsureDir(parent); err != nil {
			return Result{Change: c, Status: StatusFailed, Err: err}
		}
	}

	if fi, err := os.Lstat(dst); err == nil {
		if discovery.IsRepository(dst) {
			l.Warnf("Git repo '%s' already exists, not moving...", dst)
			return Result{Change: c, Status: StatusSkippedRepository}
		}
		if !fi.IsDir() || !isEmptyDir(dst) {
			l.Warnf("Path '%s' already exists and is not a git repo, not moving...", dst)
			return Result{Change: c, Status: StatusSkippedExisting}
		}
		l.Debug("replacing empty directory", "path", dst)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{Change: c, Status: StatusFailed, Err: fmt.Errorf("stat destination: %w", err)}
	}

	stagingRoot := e.StagingDir
	if stagingRoot == "" {
		stagingRoot = filepath.Dir(src)
	} else if err := EnsureDir(stagingRoot); err != nil {
		return Result{Change: c, Status: StatusFailed, Err: err}
	}

	staging, err := os.MkdirTemp(stagingRoot, ".git-org-staging-*")
	if err != nil {
		return Result{Change: c, Status: StatusFailed, Err: fmt.Errorf("create staging directory: %w", err)}
	}
	staged := filepath.Join(staging, filepath.Base(src))

	l.Debug("staging", "source", src, "staged", staged)
	if err := move(src, staged); err != nil {
		os.RemoveAll(staging)
		return Result{Change: c, Status: StatusFailed, Err: fmt.Errorf("stage %s: %w", src, err)}
	}

	err = EnsureDir(parent)
	if err == nil {
		err = removeEmptyDir(dst)
	}
	if err == nil {
		err = move(staged, dst)
	}
	if err != nil {
		if rerr := restore(staged, src); rerr != nil {
			return Result{Change: c, Status: StatusFailed, Err: err, StagedAt: staged}
		}
		os.RemoveAll(staging)
		return Result{Change: c, Status: StatusFailed, Err: err}
	}

	if err := os.Remove(staging); err != nil {
		l.Debug("staging directory not removed", "path", staging, "error", err)
	}
	l.Debug("moved", "source", src, "destination", dst)
	return Result{Change: c, Status: StatusMoved}
}

// restore puts a staged repository back where it came from.
func restore(staged, src string) error {
	if err := EnsureDir(filepath.Dir(src)); err != nil {
		return err
	}
	return move(staged, src)
}

func isEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) == 0
}

// removeEmptyDir clears an empty directory at the destination so the rename
// can take its place. Anything else is left for the rename to report.
func removeEmptyDir(path string) error {
	fi, err := os.Lstat(path)
	if err != nil || !fi.IsDir() || !isEmptyDir(path) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove empty destination: %w", err)
	}
	return nil
}

// EnsureDir creates path and its parents. An existing directory is fine.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// move renames src to dst, copying across filesystems when a rename is not
// possible.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyTree(src, dst); err != nil {
		os.RemoveAll(dst)
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	return os.RemoveAll(src)
}

// within reports whether path is strictly inside dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
