package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/torcrun/torc/internal/domain"
)

// githubReporter emits GitHub Actions workflow commands (::error::,
// ::warning::) so failing and skipped tests surface as annotations on the
// offending file in a pull request diff, then falls back to the shared
// stats table at the end like line/dot.
type githubReporter struct {
	base
	w io.Writer

	mu             sync.Mutex
	passed, failed int
	skipped        int
}

func newGitHubReporter(opts Options) Reporter {
	return &githubReporter{w: opts.writer()}
}

func (r *githubReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch attempt.Status {
	case domain.AttemptStatusPassed:
		r.passed++
		return
	case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
		r.skipped++
		fmt.Fprintf(r.w, "::warning file=%s::%s skipped\n", tc.RequireFile, githubEscape(tc.FullTitle()))
		return
	default:
		r.failed++
	}

	message := tc.FullTitle() + " failed"
	if attempt.Error != nil && attempt.Error.Message != "" {
		message = attempt.Error.Message
	}
	fmt.Fprintf(r.w, "::error file=%s::%s\n", tc.RequireFile, githubEscape(message))
}

func (r *githubReporter) OnError(err domain.TestError) {
	fmt.Fprintf(r.w, "::error::%s\n", githubEscape(err.Message))
}

func (r *githubReporter) OnEnd(result domain.FullResult) {
	printStatsTable(r.w, statsFromCounts(r.passed, r.failed, r.skipped, result))
}

func (r *githubReporter) PrintsToStdio() bool { return true }

// githubEscape applies the percent-encoding GitHub's workflow command
// parser requires for %, \r and \n inside a command's value.
func githubEscape(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
