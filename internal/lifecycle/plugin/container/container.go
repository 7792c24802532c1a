// Package container is the built-in Plugin stub for a container-runtime
// collaborator. The runtime itself is an external collaborator out of
// scope here; this plugin owns only the setup/teardown sequencing
// contract a real implementation would plug into.
package container

import "context"

// Config names the container image/command a real implementation would
// start and stop.
type Config struct {
	Image   string
	Command []string
}

// Plugin is a no-op placeholder satisfying lifecycle.Plugin until a real
// container runtime collaborator is wired in.
type Plugin struct {
	cfg Config
}

func New(cfg Config) *Plugin { return &Plugin{cfg: cfg} }

func (p *Plugin) Name() string { return "container" }

func (p *Plugin) Setup(ctx context.Context) error {
	if p.cfg.Image == "" {
		return nil
	}
	return nil
}

func (p *Plugin) Teardown(ctx context.Context) error {
	return nil
}
