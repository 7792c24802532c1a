package reporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// listModeReporter substitutes for list/line/dot when a run only lists
// what it would run rather than running it: a file tree with test titles
// as leaves, with no progress bar or pass/fail coloring since nothing
// executed.
type listModeReporter struct {
	base
	w io.Writer
}

func newListModeReporter(opts Options) Reporter {
	return &listModeReporter{w: opts.writer()}
}

func (r *listModeReporter) OnBegin(_ config.FullConfigInternal, root *domain.Suite) {
	files := filesOf(root)
	sort.Slice(files, func(i, j int) bool { return files[i].File < files[j].File })

	color.New(color.FgGreen).Fprintf(r.w, "Found %d test file(s):\n\n", len(files))
	for i, fileSuite := range files {
		isLastFile := i == len(files)-1
		connector := "├──"
		if isLastFile {
			connector = "└──"
		}
		color.New(color.FgCyan).Fprintf(r.w, "%s %s\n", connector, fileSuite.File)

		titles := titlesOf(fileSuite)
		if len(titles) == 0 {
			prefix := "│   └──"
			if isLastFile {
				prefix = "    └──"
			}
			color.New(color.FgRed).Fprintf(r.w, "%s (no test cases found)\n", prefix)
			continue
		}
		for j, title := range titles {
			isLastTitle := j == len(titles)-1
			var prefix string
			switch {
			case isLastFile && isLastTitle:
				prefix = "    └──"
			case isLastFile:
				prefix = "    ├──"
			case isLastTitle:
				prefix = "│   └──"
			default:
				prefix = "│   ├──"
			}
			color.New(color.FgYellow).Fprintf(r.w, "%s %s\n", prefix, title)
		}
		if !isLastFile {
			fmt.Fprintln(r.w)
		}
	}
}

func (r *listModeReporter) PrintsToStdio() bool { return true }

func titlesOf(fileSuite *domain.Suite) []string {
	var titles []string
	for _, tc := range fileSuite.AllTests() {
		titles = append(titles, tc.FullTitle())
	}
	return titles
}
