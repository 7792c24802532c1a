package builder

import "github.com/torcrun/torc/internal/domain"

// findDuplicateTitle walks fileSuite and returns the first title path
// (e.g. "describe one › describe two › test") seen more than once among
// its tests, or "" if all are unique.
func findDuplicateTitle(fileSuite *domain.Suite) string {
	seen := make(map[string]bool)
	var dup string
	walkTests(fileSuite, func(tc *domain.TestCase) bool {
		path := tc.TitlePathString()
		if seen[path] {
			dup = path
			return false
		}
		seen[path] = true
		return true
	})
	return dup
}

// walkTests visits every TestCase reachable from s in source order,
// stopping early if visit returns false.
func walkTests(s *domain.Suite, visit func(*domain.TestCase) bool) {
	var walk func(*domain.Suite) bool
	walk = func(s *domain.Suite) bool {
		for _, e := range s.Entries {
			if e.IsSuite() {
				if !walk(e.Suite) {
					return false
				}
			} else if !visit(e.Test) {
				return false
			}
		}
		return true
	}
	walk(s)
}
