package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/torcrun/torc/internal/domain"
)

// listReporter prints one line per finished test as it completes, then a
// failure tree grouped by file at the end, colored leaves under each
// file heading.
type listReporter struct {
	base
	w io.Writer

	mu       sync.Mutex
	failures []listFailure
}

type listFailure struct {
	file  string
	title string
}

func newListReporter(opts Options) Reporter {
	return &listReporter{w: opts.writer()}
}

func (r *listReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	title := tc.FullTitle()
	switch attempt.Status {
	case domain.AttemptStatusPassed:
		fmt.Fprintf(r.w, "  %s %s\n", color.GreenString("✓"), title)
	case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
		fmt.Fprintf(r.w, "  %s %s\n", color.YellowString("-"), title)
	default:
		fmt.Fprintf(r.w, "  %s %s\n", color.RedString("✗"), title)
		r.mu.Lock()
		r.failures = append(r.failures, listFailure{file: tc.RequireFile, title: title})
		r.mu.Unlock()
	}
}

func (r *listReporter) OnEnd(result domain.FullResult) {
	if len(r.failures) == 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgGreen).Fprintln(r.w, "✓ All tests passed!")
		return
	}
	fmt.Fprintln(r.w)
	color.New(color.FgRed).Fprintf(r.w, "✗ %d test(s) failed\n\n", len(r.failures))
	printFailureTree(r.w, r.failures)
}

func (r *listReporter) PrintsToStdio() bool { return true }

// printFailureTree groups failures by file and prints them as a tree,
// files in cyan, failing titles in red, sorted for deterministic output.
func printFailureTree(w io.Writer, failures []listFailure) {
	byFile := make(map[string][]string)
	for _, f := range failures {
		byFile[f.file] = append(byFile[f.file], f.title)
	}
	var files []string
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for i, file := range files {
		connector := "├──"
		if i == len(files)-1 {
			connector = "└──"
		}
		color.New(color.FgCyan).Fprintf(w, "%s %s\n", connector, file)
		titles := byFile[file]
		sort.Strings(titles)
		for j, title := range titles {
			prefix := "│   ├──"
			if i == len(files)-1 {
				prefix = "    ├──"
			}
			if j == len(titles)-1 {
				prefix = strings.Replace(prefix, "├──", "└──", 1)
			}
			color.New(color.FgRed).Fprintf(w, "%s %s\n", prefix, title)
		}
	}
}
