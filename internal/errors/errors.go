package errors

import (
	"errors"
	"fmt"
)

// Exit codes for cellar-ctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitUsage           = 2
	ExitResolution      = 3
	ExitStoreCapability = 4
	ExitAmbiguousResult = 5
	ExitEmptyResult     = 6
	ExitStore           = 7
	ExitConfigError     = 8
)

// CellarError is the base error type for cellar-ctl
type CellarError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CellarError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CellarError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CellarError) ExitCode() int {
	return e.Code
}

// New creates a new CellarError
func New(code int, message string) *CellarError {
	return &CellarError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CellarError
func Wrap(code int, message string, cause error) *CellarError {
	return &CellarError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// UsageError returns an error for a violated caller contract, such as
// mutually exclusive flags or a wrong argument arity.
func UsageError(message string) *CellarError {
	return New(ExitUsage, message)
}

// UsageErrorf is UsageError with formatting.
func UsageErrorf(format string, args ...interface{}) *CellarError {
	return New(ExitUsage, fmt.Sprintf(format, args...))
}

// ResolutionError returns an error for an installable reference that
// cannot be resolved, naming the offending reference.
func ResolutionError(ref, reason string) *CellarError {
	return New(ExitResolution, fmt.Sprintf("cannot resolve %q: %s", ref, reason))
}

// StoreCapabilityError returns an error for profile operations attempted
// against a store backend without local filesystem semantics.
func StoreCapabilityError(op string) *CellarError {
	return New(ExitStoreCapability, fmt.Sprintf("%s is not supported by this store backend", op))
}

// AmbiguousResultError returns an error when a single store path was
// required but the arguments produced several.
func AmbiguousResultError(count int) *CellarError {
	return New(ExitAmbiguousResult, fmt.Sprintf("arguments must produce a single store path, but produced %d", count))
}

// EmptyResultError returns an error when a single store path was
// required but the arguments produced none.
func EmptyResultError() *CellarError {
	return New(ExitEmptyResult, "arguments must produce a single store path, but produced none")
}

// StoreError returns an error for store-level I/O failures.
func StoreError(message string, cause error) *CellarError {
	return Wrap(ExitStore, message, cause)
}

// InvalidPath returns a StoreError for a path unknown to the store.
func InvalidPath(path string) *CellarError {
	return New(ExitStore, fmt.Sprintf("path %q is not valid in the store", path))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CellarError {
	return Wrap(ExitConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var cellarErr *CellarError
	if errors.As(err, &cellarErr) {
		return cellarErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsCode reports whether err carries the given exit code.
func IsCode(err error, code int) bool {
	var cellarErr *CellarError
	if errors.As(err, &cellarErr) {
		return cellarErr.Code == code
	}
	return false
}
