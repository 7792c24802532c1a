// Package webserver is the built-in Plugin that starts (and later
// stops) a local dev server before a run, derived from a project's
// webServer configuration. The server process itself is an external
// collaborator; this plugin owns its start/health-check/stop lifecycle
// only.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"time"
)

// Config is the subset of a project's webServer configuration this
// plugin needs.
type Config struct {
	Command    string
	URL        string
	Timeout    time.Duration
	ReuseExist bool
}

// Plugin starts Command and waits for URL to respond before Setup
// returns; Teardown stops the process it started.
type Plugin struct {
	cfg Config
	cmd *exec.Cmd
}

// New returns a Plugin for cfg. A zero-value Config means "no web server
// configured"; Setup and Teardown are then no-ops.
func New(cfg Config) *Plugin { return &Plugin{cfg: cfg} }

func (p *Plugin) Name() string { return "webserver" }

func (p *Plugin) Setup(ctx context.Context) error {
	if p.cfg.Command == "" {
		return nil
	}
	if p.cfg.ReuseExist && p.cfg.URL != "" && p.isUp(ctx) {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", p.cfg.Command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("webserver: start %q: %w", p.cfg.Command, err)
	}
	p.cmd = cmd

	if p.cfg.URL == "" {
		return nil
	}
	return p.waitUntilUp(ctx)
}

func (p *Plugin) Teardown(ctx context.Context) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("webserver: stop: %w", err)
	}
	return nil
}

func (p *Plugin) isUp(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

func (p *Plugin) waitUntilUp(ctx context.Context) error {
	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if p.isUp(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return fmt.Errorf("webserver: %s did not become ready within %s", p.cfg.URL, timeout)
}
