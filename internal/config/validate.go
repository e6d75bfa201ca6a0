package config

import (
	"fmt"
	"path/filepath"
)

// validateSkipPatterns checks that all patterns are valid filepath.Match syntax.
func validateSkipPatterns(patterns []string) error {
	for i, pat := range patterns {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("invalid organize.skip[%d] %q: %w", i, pat, err)
		}
	}
	return nil
}

// Skipped reports whether a directory name matches one of the skip globs.
// Patterns are validated on load, so match errors cannot occur here.
func (c *OrganizeConfig) Skipped(name string) bool {
	for _, pat := range c.Skip {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}
