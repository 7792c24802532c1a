package commands

import (
	"fmt"

	"github.com/torcrun/torc/internal/cli"
	"github.com/torcrun/torc/internal/storage"
	"github.com/torcrun/torc/internal/viewer"
)

// ViewCommand loads a persisted run and opens the interactive failure
// browser.
type ViewCommand struct{}

func (vc *ViewCommand) Execute(flags *cli.Flags) error {
	run, err := storage.NewJSONStorage(flags.ResultsPath).Load()
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return viewer.New().View(run)
}
