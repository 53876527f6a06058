// Package errors provides typed errors with exit codes for cellar-ctl.
//
// # Error Types
//
// CellarError is the base error type that wraps an error with an exit code:
//
//	type CellarError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitUsage           = 2  // Caller violated an arity or mutual-exclusion contract
//	ExitResolution      = 3  // Installable reference cannot be resolved
//	ExitStoreCapability = 4  // Store backend lacks local filesystem semantics
//	ExitAmbiguousResult = 5  // Single path required, several produced
//	ExitEmptyResult     = 6  // Single path required, none produced
//	ExitStore           = 7  // Store-level I/O failure
//	ExitConfigError     = 8  // Configuration error
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.UsageError("'--all' does not expect arguments")
//	errors.ResolutionError("hello", "no store object with that name")
//	errors.StoreError("failed to switch profile", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
