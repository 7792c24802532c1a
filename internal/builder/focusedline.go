package builder

import (
	"github.com/torcrun/torc/internal/collector"
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// applyFocusedLine prunes fileSuite in place: if any CLI file filter
// targeting this file specifies a line or column, retain only
// suites/tests whose location matches. A no-op if no filter targeting
// this file carries a line/column.
func applyFocusedLine(fileSuite *domain.Suite, path string, filters []config.TestFileFilter) {
	active := activeLineFilters(path, filters)
	if len(active) == 0 {
		return
	}
	filterByLocation(fileSuite, active)
}

func activeLineFilters(path string, filters []config.TestFileFilter) []config.TestFileFilter {
	var out []config.TestFileFilter
	for _, f := range filters {
		if f.Line == nil && f.Column == nil {
			continue
		}
		if f.FilePattern == "" || collector.MatchAny([]string{f.FilePattern}, path) {
			out = append(out, f)
		}
	}
	return out
}

func locationMatches(loc *domain.Location, filters []config.TestFileFilter) bool {
	if loc == nil {
		return false
	}
	for _, f := range filters {
		if f.Line != nil && loc.Line != *f.Line {
			continue
		}
		if f.Column != nil && loc.Column != *f.Column {
			continue
		}
		return true
	}
	return false
}

// filterByLocation prunes s in place, keeping an entry only if its own
// location matches or a descendant's does.
func filterByLocation(s *domain.Suite, filters []config.TestFileFilter) bool {
	selfMatch := locationMatches(s.Location, filters)

	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.IsSuite() {
			if filterByLocation(e.Suite, filters) {
				kept = append(kept, e)
			}
		} else if locationMatches(e.Test.Location, filters) {
			kept = append(kept, e)
		}
	}
	s.Entries = kept

	return selfMatch || len(s.Entries) > 0
}
