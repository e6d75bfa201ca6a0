// Package git wraps the git command line.
//
// Cloning shells out to git rather than using a Go implementation so that
// the user's SSH keys, credential helpers and insteadOf rules apply. Reading
// repository configuration does not need git and lives in package origin.
//
//   - [CLI]: clones with `git clone [-b branch] url dest`
//   - [CheckGit]: verifies git is on PATH
package git
