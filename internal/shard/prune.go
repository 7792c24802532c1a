package shard

import "github.com/torcrun/torc/internal/domain"

// Prune removes every test not in retained from root's tree, in place,
// dropping suites left with no surviving entries.
func Prune(root *domain.Suite, retained map[*domain.TestCase]bool) {
	prune(root, retained)
}

func prune(s *domain.Suite, retained map[*domain.TestCase]bool) bool {
	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.IsSuite() {
			if prune(e.Suite, retained) {
				kept = append(kept, e)
			}
		} else if retained[e.Test] {
			kept = append(kept, e)
		}
	}
	s.Entries = kept
	return len(s.Entries) > 0
}
