package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torcrun/torc/internal/cli/commands"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "torc",
		Short:   "A parallel end-to-end test run orchestrator",
		Long:    "torc discovers, builds, groups, shards, and dispatches end-to-end tests across staged projects in worker processes.",
		Version: version,
	}

	cmds := commands.NewCommands()
	cmds.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
