// Package collector implements the gitignore-aware directory walk that
// discovers candidate test files for a project, plus the
// testMatch/testIgnore/file-filter/extension narrowing the caller applies
// to the result.
package collector

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/torcrun/torc/internal/gitignore"
)

// Collect walks testDir depth-first, visiting entries in lexicographic
// order by name, and returns the ordered list of absolute file paths that
// are not git-ignored. It never descends into node_modules and never
// emits a .gitignore file itself.
func Collect(testDir string, respectGitIgnore bool) ([]string, error) {
	absRoot, err := filepath.Abs(testDir)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := walk(absRoot, nil, false, respectGitIgnore, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// walk visits dir's children in lexicographic order. rules is the
// inherited gitignore rule list (this directory's own .gitignore, if any,
// appended); parentIgnored carries down whether dir's own status was
// Ignored/IgnoredButRecurse, so descendants default to ignored until a
// rule re-includes them.
func walk(dir string, rules []gitignore.Rule, parentIgnored bool, respectGitIgnore bool, out *[]string) error {
	if respectGitIgnore {
		fileRules, err := gitignore.ParseFile(filepath.Join(dir, ".gitignore"))
		if err != nil {
			return err
		}
		if len(fileRules) > 0 {
			merged := make([]gitignore.Rule, 0, len(rules)+len(fileRules))
			merged = append(merged, rules...)
			merged = append(merged, fileRules...)
			rules = merged
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if name == ".gitignore" {
			continue
		}
		isDir := entry.IsDir()
		if isDir && name == "node_modules" {
			continue
		}

		full := filepath.Join(dir, name)

		status := gitignore.StatusIncluded
		if respectGitIgnore {
			status = gitignore.Evaluate(rules, full, isDir, parentIgnored)
		}

		if isDir {
			switch status {
			case gitignore.StatusIgnored:
				continue
			case gitignore.StatusIgnoredButRecurse:
				if err := walk(full, rules, true, respectGitIgnore, out); err != nil {
					return err
				}
			default:
				if err := walk(full, rules, false, respectGitIgnore, out); err != nil {
					return err
				}
			}
			continue
		}

		if status == gitignore.StatusIgnored {
			continue
		}
		*out = append(*out, full)
	}
	return nil
}
