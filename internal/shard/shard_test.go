package shard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/stage"
)

// 10 shardable tests, shard={current:3,total:3}.
func TestWindow_Scenario2(t *testing.T) {
	from, to := Window(10, 3, 3)
	assert.Equal(t, 7, from)
	assert.Equal(t, 10, to)
}

func TestWindow_SingleShardIsIdentity(t *testing.T) {
	from, to := Window(42, 1, 1)
	assert.Equal(t, 0, from)
	assert.Equal(t, 42, to)
}

func testGroup(n int) *domain.TestGroup {
	tests := make([]*domain.TestCase, n)
	for i := range tests {
		tests[i] = &domain.TestCase{Title: "t"}
	}
	return &domain.TestGroup{Tests: tests}
}

func TestFilter_AlwaysRunGroupSurvivesOutsideWindow(t *testing.T) {
	always := testGroup(1)
	always.Run = domain.RunAlways
	other := testGroup(10)

	stages := []stage.Stage{{Ordinal: 0, Groups: []*domain.TestGroup{always, other}}}
	filtered, retained := Filter(stages, 100, 200) // window excludes everything shardable
	assert.Len(t, filtered, 1)
	assert.Len(t, filtered[0].Groups, 1)
	assert.True(t, retained[always.Tests[0]])
	assert.False(t, retained[other.Tests[0]])
}

func TestFilter_DropsEmptyStages(t *testing.T) {
	g := testGroup(5)
	stages := []stage.Stage{
		{Ordinal: 0, Groups: []*domain.TestGroup{g}},
		{Ordinal: 1, Groups: nil},
	}
	filtered, _ := Filter(stages, 0, 5)
	assert.Len(t, filtered, 1)
}

func TestPrune_DropsUnretainedTestsAndEmptySuites(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindRoot, "")
	file := root.AddSuite(domain.NewSuite(domain.SuiteKindFile, "f"))
	keep := file.AddTest(&domain.TestCase{Title: "keep"})
	file.AddTest(&domain.TestCase{Title: "drop"})

	emptyFile := root.AddSuite(domain.NewSuite(domain.SuiteKindFile, "g"))
	emptyFile.AddTest(&domain.TestCase{Title: "also-drop"})

	Prune(root, map[*domain.TestCase]bool{keep: true})

	assert.Len(t, root.Entries, 1)
	assert.Len(t, root.Entries[0].Suite.Entries, 1)
}
