package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torcrun/torc/internal/domain"
)

func newTest(title, workerHash, requireFile, projectID string, parent *domain.Suite) *domain.TestCase {
	tc := &domain.TestCase{Title: title, WorkerHash: workerHash, RequireFile: requireFile, ProjectID: projectID}
	if parent != nil {
		parent.AddTest(tc)
	}
	return tc
}

func TestGroup_GeneralTestsShareOneGroup(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	a := newTest("a", "h1", "f.test.ts", "p1", root)
	b := newTest("b", "h1", "f.test.ts", "p1", root)

	groups := Group([]*domain.TestCase{a, b}, 2, nil)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Tests, 2)
	assert.NoError(t, Validate(groups))
}

func TestGroup_PureParallelTestsRunIsolated(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	par := root.AddSuite(domain.NewSuite(domain.SuiteKindDescribe, "d"))
	par.ParallelMode = domain.ParallelModeParallel
	a := newTest("a", "h1", "f.test.ts", "p1", par)
	b := newTest("b", "h1", "f.test.ts", "p1", par)

	groups := Group([]*domain.TestCase{a, b}, 2, nil)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Len(t, g.Tests, 1)
	}
}

func TestGroup_SerialWrapperInsideParallelSharesOneGroup(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	par := root.AddSuite(domain.NewSuite(domain.SuiteKindDescribe, "outer"))
	par.ParallelMode = domain.ParallelModeParallel
	serial := par.AddSuite(domain.NewSuite(domain.SuiteKindDescribe, "inner"))
	serial.ParallelMode = domain.ParallelModeSerial
	a := newTest("a", "h1", "f.test.ts", "p1", serial)
	b := newTest("b", "h1", "f.test.ts", "p1", serial)

	groups := Group([]*domain.TestCase{a, b}, 2, nil)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Tests, 2)
}

// 5 tests under describe.parallel with a beforeAll, workers=2 -> two
// parallelWithHooks groups sized 3 and 2.
func TestGroup_ParallelWithHooksChunksByWorkerCount(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	par := root.AddSuite(domain.NewSuite(domain.SuiteKindDescribe, "d"))
	par.ParallelMode = domain.ParallelModeParallel
	par.Hooks = []domain.Hook{{Type: domain.HookBeforeAll}}

	var tests []*domain.TestCase
	for i := 0; i < 5; i++ {
		tests = append(tests, newTest("t", "h1", "f.test.ts", "p1", par))
	}

	groups := Group(tests, 2, nil)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Tests, 3)
	assert.Len(t, groups[1].Tests, 2)
}

func TestGroup_DifferentWorkerHashesNeverShareAGroup(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	a := newTest("a", "h1", "f.test.ts", "p1", root)
	b := newTest("b", "h2", "f.test.ts", "p1", root)

	groups := Group([]*domain.TestCase{a, b}, 2, nil)
	assert.Len(t, groups, 2)
}

func TestGroup_RunModeInheritedFromProject(t *testing.T) {
	root := domain.NewSuite(domain.SuiteKindFile, "")
	a := newTest("a", "h1", "f.test.ts", "always-project", root)

	groups := Group([]*domain.TestCase{a}, 1, func(projectID string) domain.RunMode {
		if projectID == "always-project" {
			return domain.RunAlways
		}
		return domain.RunDefault
	})
	require.Len(t, groups, 1)
	assert.Equal(t, domain.RunAlways, groups[0].Run)
}
