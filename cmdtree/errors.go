package cmdtree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents error categories produced while declaring or parsing.
// These categories drive exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeInvalidArgument  ErrorType = "invalid_argument"
	ErrorTypeInvalidName      ErrorType = "invalid_name"
	ErrorTypeCapacityExceeded ErrorType = "capacity_exceeded"
	ErrorTypeTypeMismatch     ErrorType = "type_mismatch"
	ErrorTypeUnknownFlag      ErrorType = "unknown_flag"
	ErrorTypeUnknownCommand   ErrorType = "unknown_command"
	ErrorTypeInvalidFlag      ErrorType = "invalid_flag"
	ErrorTypeMissingValue     ErrorType = "missing_value"
	ErrorTypeMissingRequired  ErrorType = "missing_required"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// Sentinel errors. Every *ParseError unwraps to one of these.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidName      = errors.New("invalid flag name")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrTypeMismatch     = errors.New("value does not match option kind")
	ErrUnsupportedKind  = errors.New("unsupported option kind")
	ErrReleased         = errors.New("shared value has no live storage")
	ErrNoCommand        = errors.New("no command given")
	ErrInvalidFlag      = errors.New("token is not a flag")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUnknownFlag      = errors.New("unknown flag")
	ErrMissingValue     = errors.New("missing value")
	ErrMissingRequired  = errors.New("missing required options")
)

// ParseError describes a declaration or parse failure
type ParseError struct {
	Type       ErrorType
	Message    string
	Flag       string
	Command    string
	Suggestion string
	Missing    []string // Names of missing required options
	err        error
}

func (e *ParseError) Error() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return e.Message + " (did you mean `" + e.Suggestion + "`?)"
}

// Unwrap returns the sentinel behind the error
func (e *ParseError) Unwrap() error {
	return e.err
}

// NewParseError creates a new ParseError with the given type, sentinel and message
func NewParseError(typ ErrorType, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
		err:     sentinel,
	}
}

func (e *ParseError) withFlag(flag string) *ParseError {
	e.Flag = flag
	return e
}

func (e *ParseError) withCommand(command string) *ParseError {
	e.Command = command
	return e
}

func (e *ParseError) withSuggestion(s string) *ParseError {
	e.Suggestion = s
	return e
}

func invalidArgument(format string, args ...any) *ParseError {
	return NewParseError(ErrorTypeInvalidArgument, ErrInvalidArgument, format, args...)
}

func missingRequired(cmd *Command, missing []*Option) *ParseError {
	names := make([]string, 0, len(missing))
	for _, o := range missing {
		names = append(names, o.Name())
	}
	pe := NewParseError(ErrorTypeMissingRequired, ErrMissingRequired,
		"command `%s` is missing required options: %s", cmd.Name(), strings.Join(names, ", "))
	pe.Missing = names
	return pe.withCommand(cmd.Name())
}

// AsParseError extracts a *ParseError from err
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
