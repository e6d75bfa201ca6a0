// Package urlpath maps git remote URLs to canonical filesystem paths.
//
// A remote such as "git@github.com:d6e/git-org.git" becomes
// "<root>/github.com/d6e/git-org". Transport, credentials, ports and the
// ".git" suffix carry no meaning for the directory hierarchy and are dropped.
//
// Normalize is pure and total: it never touches the filesystem and maps every
// string to a path.
package urlpath

import (
	"path/filepath"
	"regexp"
	"strings"
)

// portPattern matches an explicit port directly after a host.
var portPattern = regexp.MustCompile(`:[0-9]{1,4}/`)

// IsLocal reports whether url points at the local filesystem.
// Local origins are never relocated.
func IsLocal(url string) bool {
	return strings.HasPrefix(url, "/") ||
		strings.HasPrefix(url, "file://") ||
		filepath.IsAbs(url)
}

// Normalize returns the canonical path for url below root.
// Local URLs (see IsLocal) are returned unchanged.
func Normalize(root, url string) string {
	if IsLocal(url) {
		return url
	}
	return filepath.Join(root, Relative(url))
}

// Relative returns the canonical path for a non-local url relative to the
// projects root, using the native separator.
func Relative(url string) string {
	url = stripScheme(url)
	url = stripUser(url)

	url = portPattern.ReplaceAllString(url, "/")
	// A host followed by an absolute path, as in "host:/path"
	url = strings.ReplaceAll(url, ":/", "/")
	// scp-like syntax, "host:path"
	url = strings.ReplaceAll(url, ":", "/")

	url = strings.ReplaceAll(url, "~", "")
	url = strings.ReplaceAll(url, "\\", "/")
	url = stripSegmentUsers(url)
	url = StripServerPrefix(url)

	return filepath.FromSlash(trimSuffixes(url))
}

// trimSuffixes drops trailing "/" and ".git" (repeated, as in "repo.git.git")
// together with "." and ".." segments, so the result cannot climb out of
// the projects root. ".git" inside a name, as in "me.github.io", is kept.
func trimSuffixes(url string) string {
	for {
		prev := url
		url = strings.TrimSuffix(url, "/")
		url = strings.TrimSuffix(url, ".git")
		url = dropDotSegments(url)
		if url == prev {
			return url
		}
	}
}

func dropDotSegments(url string) string {
	segments := strings.Split(url, "/")
	kept := segments[:0]
	for _, s := range segments {
		if s == "." || s == ".." {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "/")
}

// StripServerPrefix removes the literal "scm/" segment that some hosted git
// servers (Bitbucket Server) put in front of every clone path. It is a fixed
// substring rule, not a general path rewrite.
func StripServerPrefix(url string) string {
	for strings.Contains(url, "scm/") {
		url = strings.ReplaceAll(url, "scm/", "")
	}
	return url
}

// stripScheme drops "scheme://". Only the text up to a second "://" is kept.
func stripScheme(url string) string {
	if _, rest, ok := strings.Cut(url, "://"); ok {
		rest, _, _ = strings.Cut(rest, "://")
		return rest
	}
	return url
}

// stripUser drops "user@" from the authority, the part before the first "/".
func stripUser(url string) string {
	authority := url
	if i := strings.Index(url, "/"); i >= 0 {
		authority = url[:i]
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// stripSegmentUsers drops a "user@" prefix from every path segment.
func stripSegmentUsers(url string) string {
	segments := strings.Split(url, "/")
	for i, s := range segments {
		if j := strings.LastIndex(s, "@"); j >= 0 {
			segments[i] = s[j+1:]
		}
	}
	return strings.Join(segments, "/")
}
