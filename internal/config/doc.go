// Package config handles loading and validation of git-org configuration.
//
// Configuration is read from ~/.config/git-org/config.toml. A missing file
// yields defaults; an invalid file is reported and defaults are used.
//
// # Key Settings
//
//   - projects_root: default root for clone, list and organize
//   - clone.branch: branch passed to "git clone -b"
//   - organize.staging_dir: where staging moves happen
//   - organize.skip: directory name globs that discovery never walks
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
