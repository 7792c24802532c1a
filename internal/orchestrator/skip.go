package orchestrator

import (
	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/reporter"
)

// skipNonAlways drops every non-'always' group, emitting a synthetic
// skipped attempt (and the matching begin/end reporter events) for each
// of its tests first, so a cascaded-skip stage still produces a
// complete, reportable record.
func skipNonAlways(groups []*domain.TestGroup, r reporter.Reporter) []*domain.TestGroup {
	var kept []*domain.TestGroup
	for _, g := range groups {
		if g.Run == domain.RunAlways {
			kept = append(kept, g)
			continue
		}
		for _, tc := range g.Tests {
			r.OnTestBegin(tc)
			attempt := domain.Attempt{Status: domain.AttemptStatusSkipped}
			tc.RecordAttempt(attempt)
			r.OnTestEnd(tc, attempt)
		}
	}
	return kept
}
