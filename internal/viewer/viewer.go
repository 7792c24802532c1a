// Package viewer implements the interactive `torc view` failure browser:
// a two-pane tview application with a failure list on the left and the
// selected failure's details on the right.
package viewer

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/torcrun/torc/internal/storage"
)

// Viewer renders one persisted run record interactively.
type Viewer struct{}

// New returns a Viewer.
func New() *Viewer {
	return &Viewer{}
}

// View opens the TUI over run. If run has no failures it prints a
// one-line confirmation and returns without starting the application.
func (v *Viewer) View(run *storage.RunRecord) error {
	if len(run.Failures) == 0 {
		color.Green("✓ No test failures recorded for run %s", run.RunID)
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	listItemText := func(index int) string {
		f := run.Failures[index]
		title := f.Title
		if title == "" {
			title = fmt.Sprintf("Test %d", index+1)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, title)
	}

	for i := range run.Failures {
		list.AddItem(listItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	detailsView := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(
		" Run %s: %d/%d passed, %d failed, %d skipped | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ",
		run.RunID, run.PassedTests, run.TotalTests, run.FailedTests, run.SkippedTests))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(run.Failures) {
			return
		}
		f := run.Failures[index]
		statsView.SetText(formatFailureStats(f, index+1))
		detailsView.SetText(formatFailureDetails(f))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("viewer: run TUI: %w", err)
	}
	return nil
}

func formatFailureDetails(f storage.FailureDetail) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", f.Title)
	fmt.Fprintf(w, "[cyan]File: %s[white]\n\n", f.File)

	if f.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", f.Message)
	}
	if f.Stack != "" {
		fmt.Fprintf(w, "[yellow]Stack Trace:[white]\n")
		lines := strings.Split(f.Stack, "\n")
		for i, line := range lines {
			if i >= 10 {
				fmt.Fprintf(w, "  [gray]... and %d more lines[white]\n", len(lines)-10)
				break
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	w.Flush()
	return b.String()
}

func formatFailureStats(f storage.FailureDetail, number int) string {
	path := f.File
	if path == "" {
		path = "unknown path"
	}
	title := f.Title
	if title == "" {
		title = fmt.Sprintf("Test %d", number)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n", path, title)
}
