package builder

import "github.com/torcrun/torc/internal/domain"

// hasOnlyAnywhere reports whether s or any descendant carries only.
func hasOnlyAnywhere(s *domain.Suite) bool {
	if s.Only {
		return true
	}
	for _, e := range s.Entries {
		if e.IsSuite() {
			if hasOnlyAnywhere(e.Suite) {
				return true
			}
		} else if e.Test.Only {
			return true
		}
	}
	return false
}

// applyOnlyFilter prunes s in place: a suite is retained if it directly
// has only, contains a descendant with only, or an ancestor carries only
// (which admits the whole subtree); pruning is bottom-up and preserves
// declaration order among survivors. A no-op when nothing anywhere is
// marked only.
func applyOnlyFilter(s *domain.Suite) {
	if !hasOnlyAnywhere(s) {
		return
	}
	filterOnly(s, false)
}

func filterOnly(s *domain.Suite, inheritedOnly bool) bool {
	admitAll := inheritedOnly || s.Only

	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.IsSuite() {
			if filterOnly(e.Suite, admitAll || e.Suite.Only) {
				kept = append(kept, e)
			}
		} else if admitAll || e.Test.Only {
			kept = append(kept, e)
		}
	}
	s.Entries = kept

	return admitAll || len(s.Entries) > 0
}
