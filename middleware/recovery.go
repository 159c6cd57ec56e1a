package middleware

import (
	"fmt"
	"runtime"
)

// Recovery turns a panicking action into a *RecoveryError
func Recovery(options ...MiddlewareOption) Middleware {
	config := newConfig(options)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				recoveryErr := &RecoveryError{
					Panic:   r,
					Command: getCommandName(ctx),
					Stack:   captureStack(config),
				}
				if w := config.writer(); w != nil && len(recoveryErr.Stack) > 0 {
					fmt.Fprintf(w, "PANIC in command '%s': %v\n", recoveryErr.Command, r)
					fmt.Fprintf(w, "Stack trace:\n%s\n", recoveryErr.Stack)
				}
				err = recoveryErr
			}()

			return next(ctx)
		}
	}
}

// RecoveryWithHandler hands a recovered panic to handler, whose result
// becomes the action's error
func RecoveryWithHandler(
	handler func(panicVal any, command string, stack []byte) error,
	options ...MiddlewareOption,
) Middleware {
	config := newConfig(options)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = handler(r, getCommandName(ctx), captureStack(config))
				}
			}()

			return next(ctx)
		}
	}
}

// RecoveryToError recovers without printing
func RecoveryToError() Middleware {
	return Recovery(WithStackTrace(false))
}

// SafeRecovery recovers silently and leaves the panic value and stack in
// the context under "panic_value" and "panic_stack"
func SafeRecovery() Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					err = &RecoveryError{
						Panic:   r,
						Command: getCommandName(ctx),
						Stack:   stack,
					}
					ctx.Set("panic_stack", string(stack))
					ctx.Set("panic_value", r)
				}
			}()

			return next(ctx)
		}
	}
}

// RecoveryStats counts recovered panics per command
type RecoveryStats struct {
	TotalPanics   int
	CommandPanics map[string]int
	LastPanic     *RecoveryError
}

func NewRecoveryStats() *RecoveryStats {
	return &RecoveryStats{
		CommandPanics: make(map[string]int),
	}
}

// RecoveryWithStats is Recovery that also records into stats
func RecoveryWithStats(stats *RecoveryStats, options ...MiddlewareOption) Middleware {
	recovery := Recovery(options...)

	return func(next ActionFunc) ActionFunc {
		guarded := recovery(next)
		return func(ctx Context) error {
			err := guarded(ctx)
			if re, ok := err.(*RecoveryError); ok {
				stats.TotalPanics++
				stats.CommandPanics[re.Command]++
				stats.LastPanic = re
			}
			return err
		}
	}
}

func captureStack(config *MiddlewareConfig) []byte {
	if !config.PrintStack {
		return nil
	}
	stack := make([]byte, config.StackSize)
	return stack[:runtime.Stack(stack, false)]
}
