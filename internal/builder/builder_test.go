package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// fakeCompiler returns pre-built suites keyed by path, standing in for
// the real (out-of-scope) file compiler.
type fakeCompiler struct {
	suites map[string]func() *domain.Suite
	err    map[string]error
}

func (f fakeCompiler) CompileFile(path string) (*domain.Suite, error) {
	if err, ok := f.err[path]; ok {
		return nil, err
	}
	return f.suites[path](), nil
}

func oneTestFile(title string) func() *domain.Suite {
	return func() *domain.Suite {
		s := domain.NewSuite(domain.SuiteKindFile, "")
		s.AddTest(&domain.TestCase{Title: title})
		return s
	}
}

func TestBuild_TagsEveryTestCase(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": oneTestFile("works"),
	}}
	specs := []ProjectSpec{{
		Project: config.Project{ID: "p1", Name: "chromium", RepeatEach: 1},
		Files:   []string{"a.test.ts"},
	}}

	result := Build(specs, compiler, Options{})
	require.Empty(t, result.Fatals)

	tests := result.Root.AllTests()
	require.Len(t, tests, 1)
	assert.Equal(t, "p1", tests[0].ProjectID)
	assert.Equal(t, "a.test.ts", tests[0].RequireFile)
	assert.NotEmpty(t, tests[0].WorkerHash)
}

func TestBuild_RepeatEachClonesPerIndex(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": oneTestFile("works"),
	}}
	specs := []ProjectSpec{{
		Project: config.Project{ID: "p1", RepeatEach: 3},
		Files:   []string{"a.test.ts"},
	}}

	result := Build(specs, compiler, Options{})
	tests := result.Root.AllTests()
	require.Len(t, tests, 3)
	assert.ElementsMatch(t, []int{0, 1, 2}, []int{tests[0].RepeatEachIndex, tests[1].RepeatEachIndex, tests[2].RepeatEachIndex})
}

func TestBuild_DuplicateTitleIsFatal(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": func() *domain.Suite {
			s := domain.NewSuite(domain.SuiteKindFile, "")
			s.AddTest(&domain.TestCase{Title: "dup"})
			s.AddTest(&domain.TestCase{Title: "dup"})
			return s
		},
	}}
	specs := []ProjectSpec{{Project: config.Project{ID: "p1", RepeatEach: 1}, Files: []string{"a.test.ts"}}}

	result := Build(specs, compiler, Options{})
	require.Len(t, result.Fatals, 1)
	assert.Contains(t, result.Fatals[0].Message, "duplicate test title")
}

func TestBuild_ForbidOnlyIsFatal(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": func() *domain.Suite {
			s := domain.NewSuite(domain.SuiteKindFile, "")
			tc := s.AddTest(&domain.TestCase{Title: "focused"})
			tc.Only = true
			return s
		},
	}}
	specs := []ProjectSpec{{Project: config.Project{ID: "p1", RepeatEach: 1}, Files: []string{"a.test.ts"}}}

	result := Build(specs, compiler, Options{ForbidOnly: true})
	require.Len(t, result.Fatals, 1)
	assert.Contains(t, result.Fatals[0].Message, "forbid-only")
}

func TestBuild_OnlyPrunesNonOnlySiblings(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": func() *domain.Suite {
			s := domain.NewSuite(domain.SuiteKindFile, "")
			s.AddTest(&domain.TestCase{Title: "skipped"})
			focused := s.AddTest(&domain.TestCase{Title: "focused"})
			focused.Only = true
			return s
		},
	}}
	specs := []ProjectSpec{{Project: config.Project{ID: "p1", RepeatEach: 1}, Files: []string{"a.test.ts"}}}

	result := Build(specs, compiler, Options{})
	tests := result.Root.AllTests()
	require.Len(t, tests, 1)
	assert.Equal(t, "focused", tests[0].Title)
}

func TestBuild_GrepFiltersByFullTitle(t *testing.T) {
	compiler := fakeCompiler{suites: map[string]func() *domain.Suite{
		"a.test.ts": func() *domain.Suite {
			s := domain.NewSuite(domain.SuiteKindFile, "")
			s.AddTest(&domain.TestCase{Title: "login works"})
			s.AddTest(&domain.TestCase{Title: "logout works"})
			return s
		},
	}}
	specs := []ProjectSpec{{Project: config.Project{ID: "p1", RepeatEach: 1, Grep: "login"}, Files: []string{"a.test.ts"}}}

	result := Build(specs, compiler, Options{})
	tests := result.Root.AllTests()
	require.Len(t, tests, 1)
	assert.Equal(t, "login works", tests[0].Title)
}

func TestBuild_LoadErrorIsFatal(t *testing.T) {
	compiler := fakeCompiler{err: map[string]error{"broken.test.ts": fmt.Errorf("syntax error")}}
	specs := []ProjectSpec{{Project: config.Project{ID: "p1", RepeatEach: 1}, Files: []string{"broken.test.ts"}}}

	result := Build(specs, compiler, Options{})
	require.Len(t, result.Fatals, 1)
	assert.Contains(t, result.Fatals[0].Message, "broken.test.ts")
}

func TestWorkerHash_StableAndDistinctPerRepeat(t *testing.T) {
	p := config.Project{ID: "p1"}
	h0 := WorkerHash(p, 0)
	h0again := WorkerHash(p, 0)
	h1 := WorkerHash(p, 1)
	assert.Equal(t, h0, h0again)
	assert.NotEqual(t, h0, h1)
}
