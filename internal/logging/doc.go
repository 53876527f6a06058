// Package logging provides logging utilities for cellar-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating generation", "profile", profile, "number", num)
//	logging.Warn("profile link missing", "profile", profile)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Resolving %d installables...", len(args))
//	logging.UserSuccess("Profile now points at %s", target)
//	logging.UserWarning("Generation %d no longer exists", num)
//	logging.UserError("Failed to switch profile: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
