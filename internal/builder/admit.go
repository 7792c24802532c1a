package builder

import (
	"regexp"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// tagClone stamps every TestCase in clone with the identity a
// grouping-eligible test needs: workerHash, requireFile, repeatEachIndex,
// projectId.
func tagClone(clone *domain.Suite, project config.Project, path string, repeatIdx int) {
	hash := WorkerHash(project, repeatIdx)
	walkTests(clone, func(tc *domain.TestCase) bool {
		tc.WorkerHash = hash
		tc.RequireFile = path
		tc.RepeatEachIndex = repeatIdx
		tc.ProjectID = project.ID
		return true
	})
}

// admitByGrep prunes clone in place, keeping a test only if it satisfies
// project.Grep, project.GrepInvert, and the CLI title matcher. An invalid
// Grep or GrepInvert regex is ignored as if it were unset, rather than
// panicking — a config loader out of scope here would normally reject it
// before the orchestrator ever sees one.
func admitByGrep(clone *domain.Suite, project config.Project, titleMatcher config.TitleMatcher) {
	grepRe := compileOrNil(project.Grep)
	grepInvertRe := compileOrNil(project.GrepInvert)

	filterTests(clone, func(tc *domain.TestCase) bool {
		title := tc.FullTitle()
		if grepRe != nil && !grepRe.MatchString(title) {
			return false
		}
		if grepInvertRe != nil && grepInvertRe.MatchString(title) {
			return false
		}
		if titleMatcher != nil && !titleMatcher(title) {
			return false
		}
		return true
	})
}

func compileOrNil(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// filterTests prunes s in place, keeping a describe suite only if it has
// surviving entries, and a test only if keep(test) is true.
func filterTests(s *domain.Suite, keep func(*domain.TestCase) bool) bool {
	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.IsSuite() {
			if filterTests(e.Suite, keep) {
				kept = append(kept, e)
			}
		} else if keep(e.Test) {
			kept = append(kept, e)
		}
	}
	s.Entries = kept
	return len(s.Entries) > 0
}
