package cmdtree

import (
	"errors"
	"reflect"

	"github.com/dzonerzy/cmdtree/middleware"
)

// ExitError requests a specific exit code from inside an action
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit returns an *ExitError carrying code and err
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCodeDefaults holds the codes used when no specific mapping matches
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

// ExitCodeManager maps errors to process exit codes
type ExitCodeManager struct {
	codesByType []typeCode // DefineError order
	codesByKind map[ErrorType]int
	defaults    ExitCodeDefaults
}

type typeCode struct {
	typ  reflect.Type
	code int
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByKind: make(map[ErrorType]int),
		defaults:    defaultExitDefaults(),
	}
	for _, typ := range []ErrorType{
		ErrorTypeUnknownCommand,
		ErrorTypeInvalidFlag,
		ErrorTypeMissingRequired,
		ErrorTypeInvalidArgument,
	} {
		m.codesByKind[typ] = m.defaults.MisusageError
	}
	return m
}

// ExitCodes returns the tree's exit code manager
func (t *Tree) ExitCodes() *ExitCodeManager {
	if t.exitCodes == nil {
		t.exitCodes = newExitCodeManager()
	}
	return t.exitCodes
}

// DefineError maps errors of err's dynamic type to code. When several
// defined types match one error chain, the earliest definition wins.
// Redefining a type keeps its position and replaces the code.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	typ := reflect.TypeOf(err)
	for i := range e.codesByType {
		if e.codesByType[i].typ == typ {
			e.codesByType[i].code = code
			return e
		}
	}
	e.codesByType = append(e.codesByType, typeCode{typ: typ, code: code})
	return e
}

// DefineKind maps a *ParseError category to code
func (e *ExitCodeManager) DefineKind(typ ErrorType, code int) *ExitCodeManager {
	e.codesByKind[typ] = code
	return e
}

// Default replaces the fallback codes
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	return e
}

// Resolve converts err to an exit code. Precedence: *ExitError, then the
// *ParseError category, then types registered with DefineError, then the
// middleware errors (*middleware.ValidationError maps to the validation
// default, *middleware.RecoveryError to the general one), then the defaults.
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if pe, ok := AsParseError(err); ok {
		if code, ok := e.codesByKind[pe.Type]; ok {
			return code
		}
		return e.defaults.GeneralError
	}

	for _, tc := range e.codesByType {
		if errors.As(err, reflect.New(tc.typ).Interface()) {
			return tc.code
		}
	}

	var validationErr *middleware.ValidationError
	if errors.As(err, &validationErr) {
		return e.defaults.ValidationError
	}
	return e.defaults.GeneralError
}
