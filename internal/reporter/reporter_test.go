package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

func oneFileTwoTests() (*domain.Suite, *domain.TestCase, *domain.TestCase) {
	root := domain.NewSuite(domain.SuiteKindRoot, "")
	file := domain.NewSuite(domain.SuiteKindFile, "")
	file.File = "a.test.ts"
	root.AddSuite(file)
	pass := file.AddTest(&domain.TestCase{Title: "passes", RequireFile: "a.test.ts"})
	fail := file.AddTest(&domain.TestCase{Title: "fails", RequireFile: "a.test.ts"})
	return root, pass, fail
}

func TestNew_UnknownReporterErrors(t *testing.T) {
	_, err := New("nope", Options{})
	assert.Error(t, err)
}

func TestNew_EveryBuiltinNameResolves(t *testing.T) {
	for _, name := range []string{"list", "line", "dot", "json", "junit", "null", "github", "html", "list-mode"} {
		r, err := New(name, Options{Writer: &bytes.Buffer{}})
		require.NoError(t, err, name)
		assert.NotNil(t, r, name)
	}
}

func TestNewForRun_DefaultsToList(t *testing.T) {
	m, err := NewForRun(nil, false, Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Len(t, m.Reporters, 1)
	assert.IsType(t, &listReporter{}, m.Reporters[0])
}

func TestNewForRun_SubstitutesListModeWhenListOnly(t *testing.T) {
	m, err := NewForRun([]string{"list", "line", "dot", "json"}, true, Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Len(t, m.Reporters, 4)
	assert.IsType(t, &listModeReporter{}, m.Reporters[0])
	assert.IsType(t, &listModeReporter{}, m.Reporters[1])
	assert.IsType(t, &listModeReporter{}, m.Reporters[2])
	assert.IsType(t, &jsonReporter{}, m.Reporters[3])
}

type countingReporter struct {
	base
	begins, ends, exits int
}

func (c *countingReporter) OnBegin(config.FullConfigInternal, *domain.Suite) { c.begins++ }
func (c *countingReporter) OnEnd(domain.FullResult)                          { c.ends++ }
func (c *countingReporter) OnExit()                                         { c.exits++ }

func TestMultiplexer_FansOutToEveryReporter(t *testing.T) {
	a, b := &countingReporter{}, &countingReporter{}
	m := &Multiplexer{Reporters: []Reporter{a, b}}

	m.OnBegin(config.FullConfigInternal{}, nil)
	m.OnEnd(domain.FullResult{})
	m.OnExit()

	assert.Equal(t, 1, a.begins)
	assert.Equal(t, 1, a.ends)
	assert.Equal(t, 1, a.exits)
	assert.Equal(t, 1, b.begins)
	assert.Equal(t, 1, b.ends)
	assert.Equal(t, 1, b.exits)
}

func TestMultiplexer_PrintsToStdioIfAnyReporterDoes(t *testing.T) {
	m := &Multiplexer{Reporters: []Reporter{&nullReporter{}, &listReporter{}}}
	assert.True(t, m.PrintsToStdio())

	m2 := &Multiplexer{Reporters: []Reporter{&nullReporter{}}}
	assert.False(t, m2.PrintsToStdio())
}

func TestListReporter_PrintsFailureTreeGroupedByFile(t *testing.T) {
	var buf bytes.Buffer
	r := newListReporter(Options{Writer: &buf})
	_, pass, fail := oneFileTwoTests()

	r.OnTestEnd(pass, domain.Attempt{Status: domain.AttemptStatusPassed})
	r.OnTestEnd(fail, domain.Attempt{Status: domain.AttemptStatusFailed, Error: &domain.TestError{Message: "boom"}})
	r.OnEnd(domain.FullResult{Status: domain.StatusFailed})

	out := buf.String()
	assert.Contains(t, out, "a.test.ts")
	assert.Contains(t, out, "fails")
	assert.Contains(t, out, "1 test(s) failed")
}

func TestListReporter_AllPassedMessageWhenNoFailures(t *testing.T) {
	var buf bytes.Buffer
	r := newListReporter(Options{Writer: &buf})
	_, pass, _ := oneFileTwoTests()

	r.OnTestEnd(pass, domain.Attempt{Status: domain.AttemptStatusPassed})
	r.OnEnd(domain.FullResult{Status: domain.StatusPassed})

	assert.Contains(t, buf.String(), "All tests passed!")
}

func TestJSONReporter_WritesReportShapeWithFailures(t *testing.T) {
	var buf bytes.Buffer
	r := newJSONReporter(Options{Writer: &buf})
	root, pass, fail := oneFileTwoTests()

	r.OnBegin(config.FullConfigInternal{}, root)
	pass.Attempts = append(pass.Attempts, domain.Attempt{Status: domain.AttemptStatusPassed})
	r.OnTestEnd(pass, domain.Attempt{Status: domain.AttemptStatusPassed})
	fail.Attempts = append(fail.Attempts, domain.Attempt{Status: domain.AttemptStatusFailed, Error: &domain.TestError{Message: "boom"}})
	r.OnTestEnd(fail, domain.Attempt{Status: domain.AttemptStatusFailed, Error: &domain.TestError{Message: "boom"}})
	r.OnEnd(domain.FullResult{RunID: "run-1", Status: domain.StatusFailed, Duration: 1.5})

	var report jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Equal(t, 1, report.Stats.TotalFiles)
	assert.Equal(t, 2, report.Stats.TotalTests)
	assert.Equal(t, 1, report.Stats.Passed)
	assert.Equal(t, 1, report.Stats.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "boom", report.Failures[0].Message)
}

func TestNullReporter_NeverWritesAnything(t *testing.T) {
	r := newNullReporter(Options{})
	_, pass, _ := oneFileTwoTests()
	assert.NotPanics(t, func() {
		r.OnBegin(config.FullConfigInternal{}, nil)
		r.OnTestBegin(pass)
		r.OnTestEnd(pass, domain.Attempt{Status: domain.AttemptStatusPassed})
		r.OnEnd(domain.FullResult{})
		r.OnExit()
	})
	assert.False(t, r.PrintsToStdio())
}

func TestDotReporter_WrapsAndCountsByStatus(t *testing.T) {
	var buf bytes.Buffer
	r := newDotReporter(Options{Writer: &buf}).(*dotReporter)
	_, pass, fail := oneFileTwoTests()

	r.OnTestEnd(pass, domain.Attempt{Status: domain.AttemptStatusPassed})
	r.OnTestEnd(fail, domain.Attempt{Status: domain.AttemptStatusFailed})

	assert.Equal(t, 1, r.passed)
	assert.Equal(t, 1, r.failed)
}

func TestGitHubReporter_EmitsErrorAnnotationOnFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newGitHubReporter(Options{Writer: &buf})
	_, _, fail := oneFileTwoTests()

	r.OnTestEnd(fail, domain.Attempt{Status: domain.AttemptStatusFailed, Error: &domain.TestError{Message: "boom"}})

	assert.Contains(t, buf.String(), "::error file=a.test.ts::boom")
}

func TestListModeReporter_PrintsTreeWithoutRunning(t *testing.T) {
	var buf bytes.Buffer
	r := newListModeReporter(Options{Writer: &buf})
	root, _, _ := oneFileTwoTests()

	r.OnBegin(config.FullConfigInternal{}, root)

	out := buf.String()
	assert.Contains(t, out, "a.test.ts")
	assert.Contains(t, out, "passes")
	assert.Contains(t, out, "fails")
}
