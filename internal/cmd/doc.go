// Package cmd provides helpers for executing external commands.
//
// Commands run through [RunContext] and [OutputContext] honour context
// cancellation, are logged with their duration in verbose mode, and report
// the command's stderr as the error message when they fail:
//
//	if err := cmd.RunContext(ctx, "", "git", "clone", url, dest); err != nil {
//	    return fmt.Errorf("git clone: %w", err)
//	}
//
// git-org shells out to git for cloning so the user's SSH keys and
// credential helpers apply.
package cmd
