package collector

import (
	"path/filepath"
	"strings"

	"github.com/torcrun/torc/internal/config"
)

// Options narrows a Collect result to the files a project actually cares
// about: testMatch/testIgnore globs, permitted extensions, and any
// CLI-side file filters.
type Options struct {
	TestMatch   []string
	TestIgnore  []string
	Extensions  []string
	FileFilters []config.TestFileFilter
}

// FilterFiles narrows paths down to those admitted by opts, preserving
// the input order.
func FilterFiles(paths []string, opts Options) []string {
	var out []string
	for _, p := range paths {
		if !hasAllowedExtension(p, opts.Extensions) {
			continue
		}
		if len(opts.TestMatch) > 0 && !matchAny(opts.TestMatch, p) {
			continue
		}
		if len(opts.TestIgnore) > 0 && matchAny(opts.TestIgnore, p) {
			continue
		}
		if len(opts.FileFilters) > 0 && !matchesAnyFileFilter(opts.FileFilters, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAllowedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// matchAny reports whether any pattern matches path, tried against both
// the basename and the full path, with a flexible wildcard fallback for
// patterns filepath.Match can't directly express.
// MatchAny reports whether any pattern matches path (exported so
// internal/builder can reuse the same matching texture for the CLI file
// filter's FilePattern check).
func MatchAny(patterns []string, path string) bool { return matchAny(patterns, path) }

func matchAny(patterns []string, path string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		if wildcardSubstringMatch(pattern, base) {
			return true
		}
		if strings.Contains(pattern, "/") && wildcardSubstringMatch(pattern, path) {
			return true
		}
	}
	return false
}

func wildcardSubstringMatch(pattern, name string) bool {
	if !strings.Contains(pattern, "*") {
		return strings.Contains(name, pattern)
	}
	parts := strings.Split(pattern, "*")
	hasNonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasNonEmpty = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmpty
}

// matchesAnyFileFilter reports whether path satisfies at least one CLI
// file filter's FilePattern (Line/Column are applied later by
// internal/builder, against compiled Locations, not file paths).
func matchesAnyFileFilter(filters []config.TestFileFilter, path string) bool {
	for _, f := range filters {
		if f.FilePattern == "" || matchAny([]string{f.FilePattern}, path) {
			return true
		}
	}
	return false
}
