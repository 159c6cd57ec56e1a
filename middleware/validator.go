package middleware

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// ValidatorFunc checks the parsed command before its action runs. Use it
// for rules the declaration cannot express: conditional requirements, file
// system checks and the like.
type ValidatorFunc func(ctx Context) error

// NamedValidator pairs a ValidatorFunc with the name used in errors
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

// Custom wraps fn with a name for reporting
func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// File checks that the given string options name existing files
func File(flags ...string) NamedValidator {
	return NamedValidator{Name: "file_exists", Fn: FileExists(flags...)}
}

// Dir checks that the given string options name existing directories
func Dir(flags ...string) NamedValidator {
	return NamedValidator{Name: "directory_exists", Fn: DirectoryExists(flags...)}
}

// Validate runs the validators in order before the action. The first
// failure stops the run and is returned as a *ValidationError.
//
//	tree.Use(middleware.Validate(
//	    middleware.Custom("port_range", checkPort),
//	    middleware.File("--config"),
//	))
func Validate(validators ...NamedValidator) Middleware {
	list := make([]NamedValidator, 0, len(validators))
	for _, v := range validators {
		if v.Name == "" || v.Fn == nil {
			continue
		}
		list = append(list, v)
	}

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			for _, v := range list {
				if err := v.Fn(ctx); err != nil {
					return asValidationError(v.Name, err)
				}
			}
			return next(ctx)
		}
	}
}

// Validator runs the validators registered with WithCustomValidators, in
// name order
func Validator(options ...MiddlewareOption) Middleware {
	return ValidatorWithCustom(newConfig(options).CustomValidators)
}

// ValidatorWithCustom runs the named validators in name order
func ValidatorWithCustom(validators map[string]ValidatorFunc) Middleware {
	list := make([]NamedValidator, 0, len(validators))
	for _, name := range slices.Sorted(maps.Keys(validators)) {
		list = append(list, NamedValidator{Name: name, Fn: validators[name]})
	}
	return Validate(list...)
}

func asValidationError(name string, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return &ValidationError{
		Field:   name,
		Message: "validation failed",
		Cause:   err,
	}
}

// ConditionalRequired requires flags whenever condition passes
func ConditionalRequired(condition ValidatorFunc, requiredFlags ...string) ValidatorFunc {
	return func(ctx Context) error {
		if err := condition(ctx); err != nil {
			return nil
		}
		var missing []string
		for _, flag := range requiredFlags {
			if !ctx.IsOptionPresent(flag) {
				missing = append(missing, flag)
			}
		}
		if len(missing) > 0 {
			return &ValidationError{
				Field:   strings.Join(missing, ", "),
				Message: fmt.Sprintf("options required when condition is met: %s", strings.Join(missing, ", ")),
			}
		}
		return nil
	}
}

// OptionPresent is a condition that passes when flag was given
func OptionPresent(flag string) ValidatorFunc {
	return func(ctx Context) error {
		if ctx.IsOptionPresent(flag) {
			return nil
		}
		return fmt.Errorf("option %s not given", flag)
	}
}

// FileExists checks that each given string option, when non-empty, names
// an existing regular file
func FileExists(flags ...string) ValidatorFunc {
	return pathValidator(flags, "file", validateFileExists)
}

// DirectoryExists checks that each given string option, when non-empty,
// names an existing directory
func DirectoryExists(flags ...string) ValidatorFunc {
	return pathValidator(flags, "directory", validateDirectoryExists)
}

func pathValidator(flags []string, what string, check func(string) error) ValidatorFunc {
	return func(ctx Context) error {
		for _, flag := range flags {
			path := ctx.ReadStringOption(flag)
			if path == "" {
				continue
			}
			if err := check(path); err != nil {
				return &ValidationError{
					Field:   flag,
					Value:   path,
					Message: fmt.Sprintf("%s validation failed for option '%s'", what, flag),
					Cause:   err,
				}
			}
		}
		return nil
	}
}

func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func validateDirectoryExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// WithCustomValidators adds validators to the config used by Validator
func WithCustomValidators(validators map[string]ValidatorFunc) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		if config.CustomValidators == nil {
			config.CustomValidators = make(map[string]ValidatorFunc)
		}
		maps.Copy(config.CustomValidators, validators)
	}
}
