// Package commands holds one cobra command per torc subcommand, each
// wrapped by a Commands struct that registers them onto the root
// *cobra.Command.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/torcrun/torc/internal/cli"
)

// Commands holds every subcommand with its dependencies already wired.
type Commands struct {
	Run       *RunCommand
	ListFiles *ListFilesCommand
	View      *ViewCommand
}

// NewCommands builds every subcommand. run and list-files each load their
// own FullConfigInternal fixture at execution time from the --config flag,
// since that path is only known once cobra has parsed flags; view loads
// the results file named by --results instead.
func NewCommands() *Commands {
	return &Commands{
		Run:       &RunCommand{},
		ListFiles: &ListFilesCommand{},
		View:      &ViewCommand{},
	}
}

// Register wires every subcommand and its flags onto rootCmd.
func (c *Commands) Register(rootCmd *cobra.Command) {
	var runFlags cli.Flags
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured projects' tests",
		Long:  "Discover, build, group, shard, and dispatch tests across staged projects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run.Execute(&runFlags)
		},
	}
	registerCommonFlags(runCmd, &runFlags)
	runCmd.Flags().StringVar(&runFlags.ResultsPath, "results", "torc-results.json", "Path to persist the run's results for `torc view`")
	runCmd.Flags().StringVar(&runFlags.WorkerCommand, "worker-command", "", "Command torc execs per test (defaults to a no-op that reports every test passed)")
	runCmd.Flags().BoolVar(&runFlags.WithDatabase, "with-database", false, "Provision one MySQL schema per worker before dispatch")
	runCmd.Flags().StringVar(&runFlags.WebServerCommand, "with-webserver-command", "", "Start this command before dispatch and stop it afterward")
	runCmd.Flags().StringVar(&runFlags.WebServerURL, "with-webserver-url", "", "URL to poll until ready before dispatch starts (requires --with-webserver-command)")
	runCmd.Flags().Int64Var(&runFlags.WebServerTimeoutMs, "with-webserver-timeout", 0, "Milliseconds to wait for --with-webserver-url to become ready (default 30000)")
	runCmd.Flags().BoolVar(&runFlags.WebServerReuseExist, "with-webserver-reuse", false, "Skip starting the web server if --with-webserver-url already responds")
	runCmd.Flags().StringVar(&runFlags.ContainerImage, "with-container-image", "", "Container image a container-runtime collaborator should provision before dispatch")
	rootCmd.AddCommand(runCmd)

	var listFlags cli.Flags
	listCmd := &cobra.Command{
		Use:   "list-files",
		Short: "List discovered test files without running them",
		Long:  "Run only the file-collector and suite-builder stages and print the list-files JSON report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			listFlags.ListOnly = true
			return c.ListFiles.Execute(&listFlags)
		},
	}
	registerCommonFlags(listCmd, &listFlags)
	rootCmd.AddCommand(listCmd)

	var viewFlags cli.Flags
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a finished run's failures interactively",
		Long:  "Load a persisted run and open the tview failure browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.View.Execute(&viewFlags)
		},
	}
	viewCmd.Flags().StringVar(&viewFlags.ResultsPath, "results", "torc-results.json", "Path to the persisted run to browse")
	rootCmd.AddCommand(viewCmd)
}

// registerCommonFlags binds the RunOptions/CLIOverrides flags shared by
// `run` and `list-files`.
func registerCommonFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVar(&flags.ConfigPath, "config", "torc.config.json", "Path to the resolved FullConfigInternal JSON fixture")
	cmd.Flags().StringVar(&flags.Grep, "grep", "", "Only run tests whose full title matches this regexp")
	cmd.Flags().StringVar(&flags.GrepInvert, "grep-invert", "", "Skip tests whose full title matches this regexp")
	cmd.Flags().StringSliceVar(&flags.Project, "project", nil, "Restrict to these project names (case-insensitive, repeatable)")
	cmd.Flags().StringVar(&flags.Shard, "shard", "", "Shard selector as current/total, e.g. 2/4")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Override the worker pool size")
	cmd.Flags().IntVar(&flags.RepeatEach, "repeat-each", 0, "Repeat every test this many times")
	cmd.Flags().IntVar(&flags.Retries, "retries", 0, "Retry a failing test up to this many times")
	cmd.Flags().BoolVar(&flags.ForbidOnly, "forbid-only", false, "Fail the run if any test is marked only")
	cmd.Flags().Int64Var(&flags.GlobalTimeoutMs, "global-timeout", 0, "Abort the whole run after this many milliseconds")
	cmd.Flags().IntVar(&flags.MaxFailures, "max-failures", 0, "Stop after this many failures")
	cmd.Flags().StringSliceVar(&flags.Reporter, "reporter", nil, "Reporter name(s) to use (repeatable)")
	cmd.Flags().BoolVar(&flags.PassWithNoTests, "pass-with-no-tests", false, "Exit successfully even if no tests were found")
	cmd.Flags().StringVar(&flags.UpdateSnapshots, "update-snapshots", "", "Snapshot refresh mode: all, none, or missing")
	cmd.Flags().StringVar(&flags.OutputDir, "output", "", "Override every project's output directory")
	cmd.Flags().BoolVar(&flags.Quiet, "quiet", false, "Suppress per-test output")
}
