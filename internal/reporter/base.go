package reporter

import (
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// base gives every built-in reporter a no-op implementation of the full
// Reporter interface; each concrete reporter embeds it and overrides only
// the hooks it cares about.
type base struct{}

func (base) OnBegin(config.FullConfigInternal, *domain.Suite)      {}
func (base) OnTestBegin(*domain.TestCase)                          {}
func (base) OnTestEnd(*domain.TestCase, domain.Attempt)            {}
func (base) OnError(domain.TestError)                              {}
func (base) OnStdOut(string)                                       {}
func (base) OnEnd(domain.FullResult)                                {}
func (base) OnExit()                                                {}
func (base) PrintsToStdio() bool                                    { return false }
