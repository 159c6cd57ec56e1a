// Package middleware provides the middleware run around cmdtree command
// actions: Logger, Recovery and Validator.
package middleware

import (
	"fmt"
	"io"
	"os"
)

// Context is what middleware can see of the running command. It is
// implemented by *cmdtree.Command; the interface lives here so this package
// does not import cmdtree.
type Context interface {
	// Name returns the primary name of the selected command.
	Name() string

	// Description returns the command's help description.
	Description() string

	// Parameters returns the positional tokens left after parsing. The
	// slice should be treated as read-only.
	Parameters() []string

	// IsOptionPresent reports whether the option named flag appeared on the
	// command line.
	IsOptionPresent(flag string) bool

	ReadBoolOption(flag string) bool
	ReadIntOption(flag string) int
	ReadFloatOption(flag string) float64
	ReadStringOption(flag string) string

	// ReadMultiStringOption returns every value of a multi-string option.
	// The slice should be treated as read-only.
	ReadMultiStringOption(flag string) []string

	// Set stores a key/value pair for later middleware or the action.
	// Keys should be namespaced (e.g. "logger.start").
	Set(key string, value any)

	// Get retrieves a value stored with Set, nil when absent.
	Get(key string) any
}

// ActionFunc is the action signature middleware wraps
type ActionFunc func(ctx Context) error

// Middleware wraps an action
type Middleware func(next ActionFunc) ActionFunc

// MiddlewareChain is an ordered list of middleware
type MiddlewareChain []Middleware

// Apply wraps action so that the first middleware in the chain runs first
func (chain MiddlewareChain) Apply(action ActionFunc) ActionFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		action = chain[i](action)
	}
	return action
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(middleware))
	out = append(out, chain...)
	return append(out, middleware...)
}

// Chain creates a chain preserving the given order
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// RecoveryError represents a panic recovered from an action
type RecoveryError struct {
	Panic   any
	Command string
	Stack   []byte
}

func (e *RecoveryError) Error() string {
	return "command '" + e.Command + "' panicked: " + toString(e.Panic)
}

// MiddlewareConfig contains configuration for middleware behavior
type MiddlewareConfig struct {
	LogLevel         LogLevel
	LogOutput        LogOutput
	LogFormat        LogFormat
	Writer           io.Writer // overrides LogOutput when set
	IncludeArgs      bool
	PrintStack       bool
	StackSize        int
	CustomValidators map[string]ValidatorFunc
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// LogOutput represents log output destinations
type LogOutput int

const (
	LogOutputStderr LogOutput = iota
	LogOutputStdout
	LogOutputNone
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// MiddlewareOption configures a middleware constructor
type MiddlewareOption func(config *MiddlewareConfig)

// DefaultConfig returns the configuration used when no options are given
func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:         LogLevelInfo,
		LogOutput:        LogOutputStderr,
		LogFormat:        LogFormatText,
		IncludeArgs:      true,
		PrintStack:       true,
		StackSize:        4096,
		CustomValidators: make(map[string]ValidatorFunc),
	}
}

func newConfig(options []MiddlewareOption) *MiddlewareConfig {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return config
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

// WithWriter sends log and panic output to w
func WithWriter(w io.Writer) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.Writer = w
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

func WithArgs(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.IncludeArgs = enabled
	}
}

// writer returns the configured destination, nil when output is disabled
func (c *MiddlewareConfig) writer() io.Writer {
	if c.Writer != nil {
		return c.Writer
	}
	switch c.LogOutput {
	case LogOutputStdout:
		return os.Stdout
	case LogOutputNone:
		return nil
	case LogOutputStderr:
		return os.Stderr
	default:
		return os.Stderr
	}
}

func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func getCommandName(ctx Context) string {
	if ctx == nil || ctx.Name() == "" {
		return "unknown"
	}
	return ctx.Name()
}
