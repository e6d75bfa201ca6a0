package git

import (
	"context"
	"fmt"
)

// CLI clones repositories with the git binary.
type CLI struct{}

// cloneArgs builds the argument list for git clone. "--" keeps a url that
// starts with "-" from being read as an option.
func cloneArgs(url, dest, branch string) []string {
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	return append(args, "--", url, dest)
}

// Clone runs `git clone [-b branch] -- url dest`.
func (CLI) Clone(ctx context.Context, url, dest, branch string) error {
	if err := runGit(ctx, "", cloneArgs(url, dest, branch)...); err != nil {
		return fmt.Errorf("git clone: %w", err)
	}
	return nil
}
