// Package reporter defines the Reporter interface a run's observers
// implement, a Multiplexer fanning events to every configured reporter,
// and a name-keyed registry of built-ins (replacing the dynamic,
// path-based reporter loading a JS-hosted runner would use).
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// Reporter receives lifecycle notifications for one run. Events for a
// given TestCase arrive from a single producer and are never interleaved;
// OnBegin precedes every other call, OnEnd follows every test event, and
// OnExit is always last.
type Reporter interface {
	OnBegin(cfg config.FullConfigInternal, root *domain.Suite)
	OnTestBegin(tc *domain.TestCase)
	OnTestEnd(tc *domain.TestCase, attempt domain.Attempt)
	OnError(err domain.TestError)
	OnStdOut(text string)
	OnEnd(result domain.FullResult)
	OnExit()
	// PrintsToStdio reports whether this reporter writes to the terminal,
	// so the orchestrator can suppress other stdout chatter while it runs.
	PrintsToStdio() bool
}

// Multiplexer fans every call to each of its Reporters in order.
type Multiplexer struct {
	Reporters []Reporter
}

func (m *Multiplexer) OnBegin(cfg config.FullConfigInternal, root *domain.Suite) {
	for _, r := range m.Reporters {
		r.OnBegin(cfg, root)
	}
}

func (m *Multiplexer) OnTestBegin(tc *domain.TestCase) {
	for _, r := range m.Reporters {
		r.OnTestBegin(tc)
	}
}

func (m *Multiplexer) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	for _, r := range m.Reporters {
		r.OnTestEnd(tc, attempt)
	}
}

func (m *Multiplexer) OnError(err domain.TestError) {
	for _, r := range m.Reporters {
		r.OnError(err)
	}
}

func (m *Multiplexer) OnStdOut(text string) {
	for _, r := range m.Reporters {
		r.OnStdOut(text)
	}
}

func (m *Multiplexer) OnEnd(result domain.FullResult) {
	for _, r := range m.Reporters {
		r.OnEnd(result)
	}
}

func (m *Multiplexer) OnExit() {
	for _, r := range m.Reporters {
		r.OnExit()
	}
}

func (m *Multiplexer) PrintsToStdio() bool {
	for _, r := range m.Reporters {
		if r.PrintsToStdio() {
			return true
		}
	}
	return false
}

// Options configures a built-in reporter's output destination.
type Options struct {
	// Writer is where a terminal-facing reporter (list/line/dot/github)
	// writes. Defaults to os.Stdout.
	Writer io.Writer
	// OutputFile is where a file-facing reporter (json/junit/html) writes
	// its report. Empty means "write to Writer instead".
	OutputFile string
}

func (o Options) writer() io.Writer {
	if o.Writer != nil {
		return o.Writer
	}
	return os.Stdout
}

// Factory builds one named reporter.
type Factory func(opts Options) Reporter

var registry = map[string]Factory{
	"list":      newListReporter,
	"line":      newLineReporter,
	"dot":       newDotReporter,
	"json":      newJSONReporter,
	"junit":     newJUnitReporter,
	"null":      newNullReporter,
	"github":    newGitHubReporter,
	"html":      newHTMLReporter,
	"list-mode": newListModeReporter,
}

// New builds the named built-in reporter.
func New(name string, opts Options) (Reporter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("reporter: unknown reporter %q", name)
	}
	return factory(opts), nil
}

// NewForRun builds the Multiplexer for a run's configured reporter list,
// substituting the minimal list-mode reporter for list/line/dot whenever
// listOnly is set (since those three otherwise assume tests actually ran).
func NewForRun(names []string, listOnly bool, opts Options) (*Multiplexer, error) {
	if len(names) == 0 {
		names = []string{"list"}
	}
	reporters := make([]Reporter, 0, len(names))
	for _, name := range names {
		effective := name
		if listOnly {
			switch name {
			case "list", "line", "dot":
				effective = "list-mode"
			}
		}
		r, err := New(effective, opts)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, r)
	}
	return &Multiplexer{Reporters: reporters}, nil
}

// summary is the set of run-wide counts every table/summary-printing
// reporter needs, computed by walking the suite tree's recorded attempts.
type summary struct {
	totalFiles  int
	failedFiles int
	totalTests  int
	passedTests int
	failedTests int
	skippedTests int
}

func summarize(root *domain.Suite) summary {
	var s summary
	if root == nil {
		return s
	}
	for _, fileSuite := range filesOf(root) {
		s.totalFiles++
		fileFailed := false
		for _, tc := range fileSuite.AllTests() {
			s.totalTests++
			switch attemptStatus(tc) {
			case domain.AttemptStatusPassed:
				s.passedTests++
			case domain.AttemptStatusFailed, domain.AttemptStatusTimedOut:
				s.failedTests++
				fileFailed = true
			case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
				s.skippedTests++
			}
		}
		if fileFailed {
			s.failedFiles++
		}
	}
	return s
}

func attemptStatus(tc *domain.TestCase) domain.AttemptStatus {
	last := tc.LastAttempt()
	if last == nil {
		return domain.AttemptStatusSkipped
	}
	return last.Status
}

// filesOf returns every SuiteKindFile node reachable from root, regardless
// of how many project/repeatEach clones wrap it.
func filesOf(s *domain.Suite) []*domain.Suite {
	var out []*domain.Suite
	var walk func(*domain.Suite)
	walk = func(n *domain.Suite) {
		if n.Kind == domain.SuiteKindFile {
			out = append(out, n)
			return
		}
		for _, e := range n.Entries {
			if e.IsSuite() {
				walk(e.Suite)
			}
		}
	}
	walk(s)
	return out
}
