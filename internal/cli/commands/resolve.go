package commands

import (
	"github.com/torcrun/torc/internal/cli"
	"github.com/torcrun/torc/internal/config"
)

// resolveConfig loads flags.ConfigPath's FullConfigInternal fixture and
// folds flags' CLI overrides onto it, returning the resolved config
// plus the RunOptions the orchestrator needs.
func resolveConfig(flags *cli.Flags) (config.FullConfigInternal, config.RunOptions, error) {
	base, err := cli.LoadConfig(flags.ConfigPath)
	if err != nil {
		return config.FullConfigInternal{}, config.RunOptions{}, err
	}

	overrides, err := flags.ToCLIOverrides()
	if err != nil {
		return config.FullConfigInternal{}, config.RunOptions{}, err
	}
	runOpts := flags.ToRunOptions()

	cfg, err := config.Resolve(base, overrides, runOpts, config.OSEnv)
	if err != nil {
		return config.FullConfigInternal{}, config.RunOptions{}, err
	}
	return cfg, runOpts, nil
}
