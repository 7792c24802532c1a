package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// lineReporter drives a single updating progress line with running
// success/failure counts, using a schollz/progressbar bar themed with
// fatih/color, then prints a box-drawn statistics table.
type lineReporter struct {
	base
	w io.Writer

	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	passed  int
	failed  int
	skipped int
}

func newLineReporter(opts Options) Reporter {
	return &lineReporter{w: opts.writer()}
}

func (r *lineReporter) OnBegin(cfg config.FullConfigInternal, root *domain.Suite) {
	total := len(root.AllTests())
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(
			color.CyanString("Running tests: ")+color.GreenString("[success: 0")+" | "+color.RedString("failed: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (r *lineReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch attempt.Status {
	case domain.AttemptStatusPassed:
		r.passed++
	case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
		r.skipped++
	default:
		r.failed++
	}
	r.bar.Set(r.passed + r.failed + r.skipped)
	r.bar.Describe(
		color.CyanString("Running tests: ") +
			color.GreenString("[success: %d", r.passed) +
			" | " +
			color.RedString("failed: %d]", r.failed),
	)
}

func (r *lineReporter) OnEnd(result domain.FullResult) {
	if r.bar != nil {
		r.bar.Finish()
		fmt.Fprintln(r.w)
	}
	printStatsTable(r.w, statsFromCounts(r.passed, r.failed, r.skipped, result))
}

func (r *lineReporter) PrintsToStdio() bool { return true }

type stats struct {
	passed, failed, skipped int
	durationSeconds         float64
	status                  domain.FullResultStatus
}

func statsFromCounts(passed, failed, skipped int, result domain.FullResult) stats {
	return stats{passed: passed, failed: failed, skipped: skipped, durationSeconds: result.Duration, status: result.Status}
}

// printStatsTable renders the box-drawn passed/failed/skipped/duration/
// status table shared by the line and dot reporters.
func printStatsTable(w io.Writer, s stats) {
	fmt.Fprintln(w)
	color.New(color.FgCyan).Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	printStatsRow(w, "Passed", s.passed, color.FgGreen)
	printStatsRow(w, "Failed", s.failed, color.FgRed)
	printStatsRow(w, "Skipped", s.skipped, color.FgYellow)
	fmt.Fprintf(w, "│ %-31s │ ", "Duration")
	color.New(color.FgWhite).Fprintf(w, "%-27s │\n", fmt.Sprintf("%.2fs", s.durationSeconds))
	fmt.Fprintf(w, "│ %-31s │ ", "Status")
	color.New(color.FgWhite).Fprintf(w, "%-27s │\n", string(s.status))
	color.New(color.FgCyan).Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")
}

func printStatsRow(w io.Writer, label string, count int, c color.Attribute) {
	fmt.Fprintf(w, "│ %-31s │ ", label)
	color.New(c).Fprintf(w, "%-27d │\n", count)
}
