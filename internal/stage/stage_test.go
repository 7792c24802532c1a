package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torcrun/torc/internal/domain"
)

func TestPartition_AscendingOrdinalOrder(t *testing.T) {
	groups := []*domain.TestGroup{
		{ProjectID: "b"},
		{ProjectID: "a"},
	}
	stageOf := map[string]int{"a": 0, "b": 1}

	stages := Partition(groups, func(id string) int { return stageOf[id] })
	require.Len(t, stages, 2)
	assert.Equal(t, 0, stages[0].Ordinal)
	assert.Equal(t, 1, stages[1].Ordinal)
}

func TestMaxConcurrentGroups_IsMaxAcrossStages(t *testing.T) {
	stages := []Stage{
		{Ordinal: 0, Groups: make([]*domain.TestGroup, 2)},
		{Ordinal: 1, Groups: make([]*domain.TestGroup, 5)},
	}
	assert.Equal(t, 5, MaxConcurrentGroups(stages))
}
