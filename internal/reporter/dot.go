package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/torcrun/torc/internal/domain"
)

const dotsPerLine = 80

// dotReporter prints one colored character per finished test, wrapping
// every dotsPerLine characters, then the same statistics table the line
// reporter prints.
type dotReporter struct {
	base
	w io.Writer

	mu             sync.Mutex
	count          int
	passed, failed int
	skipped        int
}

func newDotReporter(opts Options) Reporter {
	return &dotReporter{w: opts.writer()}
}

func (r *dotReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch attempt.Status {
	case domain.AttemptStatusPassed:
		r.passed++
		color.New(color.FgGreen).Fprint(r.w, ".")
	case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
		r.skipped++
		color.New(color.FgYellow).Fprint(r.w, "-")
	default:
		r.failed++
		color.New(color.FgRed).Fprint(r.w, "F")
	}
	r.count++
	if r.count%dotsPerLine == 0 {
		fmt.Fprintln(r.w)
	}
}

func (r *dotReporter) OnEnd(result domain.FullResult) {
	fmt.Fprintln(r.w)
	printStatsTable(r.w, statsFromCounts(r.passed, r.failed, r.skipped, result))
}

func (r *dotReporter) PrintsToStdio() bool { return true }
