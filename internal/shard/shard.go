// Package shard implements the shard-filter arithmetic and suite-tree
// pruning.
package shard

import (
	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/stage"
)

// ShardableTotal sums AllTests().length over project suites whose
// project does not run 'always'.
func ShardableTotal(root *domain.Suite, runOf func(projectID string) domain.RunMode) int {
	total := 0
	for _, e := range root.Entries {
		if !e.IsSuite() || e.Suite.Kind != domain.SuiteKindProject || e.Suite.Project == nil {
			continue
		}
		if runOf(e.Suite.Project.ID) == domain.RunAlways {
			continue
		}
		total += len(e.Suite.AllTests())
	}
	return total
}

// Window computes the [from, to) range of shardable-test indices this
// 1-based shard owns, distributing any remainder across the first shards.
func Window(shardableTotal, current, total int) (from, to int) {
	if total <= 0 {
		total = 1
	}
	shardSize := shardableTotal / total
	extraOne := shardableTotal - shardSize*total

	k := current - 1
	extra := extraOne
	if k < extra {
		extra = k
	}
	from = shardSize*k + extra
	to = from + shardSize
	if k < extraOne {
		to++
	}
	return from, to
}

// Filter walks stages in source order, retaining every run='always'
// group unconditionally and every shardable group whose running
// pre-group counter falls in [from, to). It returns the
// filtered stages (stages left with zero groups are dropped) and the set
// of TestCases that survived, for suite-tree pruning.
func Filter(stages []stage.Stage, from, to int) ([]stage.Stage, map[*domain.TestCase]bool) {
	retained := make(map[*domain.TestCase]bool)
	counter := 0

	var filtered []stage.Stage
	for _, st := range stages {
		var kept []*domain.TestGroup
		for _, g := range st.Groups {
			if g.Run == domain.RunAlways {
				kept = append(kept, g)
				markRetained(retained, g)
				continue
			}
			if counter >= from && counter < to {
				kept = append(kept, g)
				markRetained(retained, g)
			}
			counter += len(g.Tests)
		}
		if len(kept) > 0 {
			filtered = append(filtered, stage.Stage{Ordinal: st.Ordinal, Groups: kept})
		}
	}
	return filtered, retained
}

func markRetained(retained map[*domain.TestCase]bool, g *domain.TestGroup) {
	for _, tc := range g.Tests {
		retained[tc] = true
	}
}
