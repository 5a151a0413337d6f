package scaffold

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchesGlobs reports whether relPath matches any pattern. Patterns without
// a slash also match against the base name.
func matchesGlobs(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, path.Base(relPath)); err == nil && ok {
				return true
			}
		}
	}

	return false
}
