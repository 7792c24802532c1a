package reporter

// nullReporter discards every event.
type nullReporter struct{ base }

func newNullReporter(Options) Reporter { return &nullReporter{} }
