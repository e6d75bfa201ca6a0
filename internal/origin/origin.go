// Package origin reads a repository's configuration and extracts the
// remote origin URL.
//
// The configuration store is abstracted behind [Store] and [Reader] so the
// planner can be exercised with in-memory fakes. [GitConfigReader] is the
// production reader; it parses .git/config with go-git's config decoder and
// never shells out to git.
package origin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"

	"github.com/d6e/git-org/internal/log"
)

// Section and key holding the origin URL.
const (
	OriginSection = `remote "origin"`
	URLKey        = "url"
)

// Store is a section-keyed key-value configuration store. Section names use
// git's header syntax, e.g. `core` or `remote "origin"`.
type Store interface {
	HasSection(section string) bool
	Lookup(section, key string) (string, bool)
}

// Reader loads the configuration store of a repository.
type Reader interface {
	Read(repoPath string) (Store, error)
}

// Extract returns the raw origin URL of the repository at repoPath.
// A missing origin is logged as a warning and reported as false.
// The URL is not validated here.
func Extract(store Store, repoPath string, l *log.Logger) (string, bool) {
	if !store.HasSection(OriginSection) {
		l.Warnf("No origin found for '%s'", repoPath)
		return "", false
	}
	url, ok := store.Lookup(OriginSection, URLKey)
	if !ok || url == "" {
		l.Warnf("No origin url configured for '%s'", repoPath)
		return "", false
	}
	return url, true
}

// GitConfigReader reads <repo>/.git/config.
type GitConfigReader struct{}

// Read parses the repository's git config file.
func (GitConfigReader) Read(repoPath string) (Store, error) {
	path := filepath.Join(repoPath, ".git", "config")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open git config: %w", err)
	}
	defer f.Close()

	cfg := format.New()
	if err := format.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return gitConfig{cfg: cfg}, nil
}

// gitConfig adapts go-git's raw config to Store.
type gitConfig struct {
	cfg *format.Config
}

func (g gitConfig) HasSection(section string) bool {
	name, sub := splitSection(section)
	if !g.cfg.HasSection(name) {
		return false
	}
	if sub == "" {
		return true
	}
	return g.cfg.Section(name).HasSubsection(sub)
}

func (g gitConfig) Lookup(section, key string) (string, bool) {
	if !g.HasSection(section) {
		return "", false
	}
	name, sub := splitSection(section)
	s := g.cfg.Section(name)
	if sub == "" {
		if !s.HasOption(key) {
			return "", false
		}
		return s.Option(key), true
	}
	ss := s.Subsection(sub)
	if !ss.HasOption(key) {
		return "", false
	}
	return ss.Option(key), true
}

// splitSection splits `remote "origin"` into ("remote", "origin").
func splitSection(section string) (name, sub string) {
	name, rest, ok := strings.Cut(strings.TrimSpace(section), " ")
	if !ok {
		return name, ""
	}
	return name, strings.Trim(strings.TrimSpace(rest), `"`)
}

// MapStore is an in-memory Store keyed by section then key.
type MapStore map[string]map[string]string

func (m MapStore) HasSection(section string) bool {
	_, ok := m[section]
	return ok
}

func (m MapStore) Lookup(section, key string) (string, bool) {
	v, ok := m[section][key]
	return v, ok
}
