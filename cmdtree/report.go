package cmdtree

import (
	"sync"

	cmdio "github.com/dzonerzy/cmdtree/io"
)

// Reporter receives non-fatal diagnostics: invalid aliases, unknown flags,
// options that failed to parse. *cmdio.Logger satisfies it.
type Reporter interface {
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

var (
	reporterMu      sync.RWMutex
	defaultReporter Reporter = cmdio.NewLogger(cmdio.New()).WithFormat(cmdio.LogFormatTagged)
)

// SetDefaultReporter replaces the process-wide reporter and returns the previous one.
// A nil reporter discards diagnostics.
func SetDefaultReporter(r Reporter) Reporter {
	if r == nil {
		r = discard{}
	}
	reporterMu.Lock()
	defer reporterMu.Unlock()
	prev := defaultReporter
	defaultReporter = r
	return prev
}

// DefaultReporter returns the process-wide reporter
func DefaultReporter() Reporter {
	reporterMu.RLock()
	defer reporterMu.RUnlock()
	return defaultReporter
}

type discard struct{}

func (discard) Warning(string, ...any) {}
func (discard) Error(string, ...any)   {}
