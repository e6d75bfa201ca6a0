// Package discovery finds git repositories below a projects root.
//
// Discovery and nesting are separate steps: [FindRepositories] reports every
// directory that directly contains a .git directory, and [FilterNested]
// drops repositories that live inside another reported repository.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/d6e/git-org/internal/log"
)

// MetadataDir is the repository metadata directory name.
const MetadataDir = ".git"

// Options configures a discovery walk.
type Options struct {
	// Skip reports directory names that are not walked.
	Skip func(name string) bool
	Log  *log.Logger
}

// IsRepository reports whether path directly contains a .git directory.
// Worktree checkouts (where .git is a file) are not repository roots.
func IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, MetadataDir))
	return err == nil && info.IsDir()
}

// FindRepositories walks root and returns every repository root in walk
// (lexical) order. Unreadable directories are logged and skipped.
// Symlinks are not followed.
func FindRepositories(ctx context.Context, root string, opts Options) ([]string, error) {
	l := opts.Log
	if l == nil {
		l = log.Discard()
	}

	var repos []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			l.Warnf("skipping '%s': %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == MetadataDir {
			if path == root {
				return filepath.SkipDir
			}
			repos = append(repos, filepath.Dir(path))
			return filepath.SkipDir
		}
		if path != root && opts.Skip != nil && opts.Skip(d.Name()) {
			l.Debug("skipping directory", "path", path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// FilterNested removes every path that lies inside another path of the set.
// Paths are compared segment by segment, so "/a/long" does not contain
// "/a/longer". The result is sorted and free of duplicates; applying the
// filter twice gives the same result as applying it once.
func FilterNested(paths []string) []string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	var parents [][]string
	var kept []string
	for _, p := range sorted {
		segments := splitSegments(p)
		nested := false
		for _, parent := range parents {
			if hasSegmentPrefix(segments, parent) {
				nested = true
				break
			}
		}
		if !nested {
			parents = append(parents, segments)
			kept = append(kept, p)
		}
	}
	return kept
}

// splitSegments splits a path on both separators so results do not depend
// on how the path was produced.
func splitSegments(path string) []string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.Split(strings.TrimSuffix(path, "/"), "/")
}

// hasSegmentPrefix reports whether prefix is a leading run of segments.
func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i := range prefix {
		if segments[i] != prefix[i] {
			return false
		}
	}
	return true
}
