package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CloneConfig holds clone-related configuration
type CloneConfig struct {
	Branch string `toml:"branch"` // branch passed to git clone -b (empty = remote HEAD)
}

// OrganizeConfig holds organize-related configuration
type OrganizeConfig struct {
	StagingDir string   `toml:"staging_dir"` // where staging moves happen (empty = next to the source)
	Skip       []string `toml:"skip"`        // directory name globs not walked
}

// Config holds the git-org configuration
type Config struct {
	ProjectsRoot string         `toml:"projects_root"`
	Clone        CloneConfig    `toml:"clone"`
	Organize     OrganizeConfig `toml:"organize"`

	// Path is the file the config was loaded from. Empty for defaults.
	Path string `toml:"-"`
}

// ErrExists is returned by InitAt when the file exists and force is not set.
var ErrExists = errors.New("config file already exists")

// Default returns the default configuration. Nothing is skipped, so
// discovery walks the whole tree unless organize.skip says otherwise.
func Default() Config {
	return Config{}
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// ResolveRoot picks the projects root: flag > config > current directory.
func (c *Config) ResolveRoot(flagValue, workDir string) string {
	switch {
	case flagValue != "":
		return flagValue
	case c.ProjectsRoot != "":
		return c.ProjectsRoot
	default:
		return workDir
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// DefaultPath returns ~/.config/git-org/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-org", "config.toml"), nil
}

// Load reads config from ~/.config/git-org/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path with the same rules as Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Path = path

	if err := ValidatePath(cfg.ProjectsRoot, "projects_root"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(cfg.Organize.StagingDir, "organize.staging_dir"); err != nil {
		return Default(), err
	}
	if err := validateSkipPatterns(cfg.Organize.Skip); err != nil {
		return Default(), err
	}

	// Expand ~ (shell doesn't expand in config files)
	if cfg.ProjectsRoot, err = expandPath(cfg.ProjectsRoot); err != nil {
		return Default(), fmt.Errorf("expand projects_root: %w", err)
	}
	if cfg.Organize.StagingDir, err = expandPath(cfg.Organize.StagingDir); err != nil {
		return Default(), fmt.Errorf("expand organize.staging_dir: %w", err)
	}

	return cfg, nil
}

const defaultConfig = `# git-org configuration

# Default projects root for "clone", "list" and "organize" when no root is given.
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# projects_root = "~/src"

[clone]
# Branch to check out when cloning. Empty uses the remote's default branch.
# branch = "main"

[organize]
# Directory used for staging moves. Defaults to the parent of each source
# repository, which keeps the move on one filesystem.
# staging_dir = "~/.cache/git-org"

# Directory name globs that are never walked while looking for repositories.
# Repositories below a skipped directory are never found.
# skip = ["node_modules"]
`

// Init creates a default config file at ~/.config/git-org/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config file to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
