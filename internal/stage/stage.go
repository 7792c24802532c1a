// Package stage partitions test groups into ordered stages by project
// stage ordinal and computes the _maxConcurrentTestGroups figure.
package stage

import (
	"sort"

	"github.com/torcrun/torc/internal/domain"
)

// Stage is one ordinal's worth of groups, run to completion before the
// next stage begins.
type Stage struct {
	Ordinal int
	Groups  []*domain.TestGroup
}

// Partition groups by their project's stage ordinal, visiting stages in
// ascending order. stageOf reports a project's configured
// stage ordinal.
func Partition(groups []*domain.TestGroup, stageOf func(projectID string) int) []Stage {
	byOrdinal := make(map[int][]*domain.TestGroup)
	var ordinals []int
	seen := make(map[int]bool)

	for _, g := range groups {
		ord := stageOf(g.ProjectID)
		byOrdinal[ord] = append(byOrdinal[ord], g)
		if !seen[ord] {
			seen[ord] = true
			ordinals = append(ordinals, ord)
		}
	}

	sort.Ints(ordinals)

	stages := make([]Stage, 0, len(ordinals))
	for _, ord := range ordinals {
		stages = append(stages, Stage{Ordinal: ord, Groups: byOrdinal[ord]})
	}
	return stages
}

// MaxConcurrentGroups reports max(|groups per stage|) across stages, the
// _maxConcurrentTestGroups figure. Passed post-shard-filter stages, it
// counts run='always' groups too. orchestrator.Run does not call it, so
// reporters do not receive this value.
func MaxConcurrentGroups(stages []Stage) int {
	max := 0
	for _, s := range stages {
		if len(s.Groups) > max {
			max = len(s.Groups)
		}
	}
	return max
}
