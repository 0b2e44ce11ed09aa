// Package log provides the logging port used across auditdeck.
//
// Packages depend on [Logger] and never on a concrete logging library. Use
// [Noop] where output must be discarded, for example while the terminal UI
// owns the screen and no log file is configured.
package log

// Kv is a helper type for structured logging key-value pairs.
type Kv map[string]any

// Logger is the interface that loggers must implement.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values Kv) Logger
}

type noop int

// Noop is a logger that discards all log output.
const Noop = noop(0)

var _ Logger = Noop

func (n noop) Infof(string, ...any)    {}
func (n noop) Warningf(string, ...any) {}
func (n noop) Errorf(string, ...any)   {}
func (n noop) Debugf(string, ...any)   {}
func (n noop) WithValues(Kv) Logger    { return n }
