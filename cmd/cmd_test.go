package cmd

import (
	"bytes"
	"testing"
)

// resetCommandState restores all command flag variables to their
// defaults so invocations within one test binary do not bleed into
// each other.
func resetCommandState() {
	verbose = false
	jsonOutput = false

	pathsFlags.reset()
	closureFlags.reset()
	realiseFlags.reset()
	realiseDryRun = false
	realiseProfile = ""

	runIgnoreEnv = false
	runKeep = nil
	runUnset = nil
	runCommand = ""

	addName = ""
	addRefs = nil

	profileName = ""
	verifyProfileName = ""
}

// executeCommand runs the root command with the given arguments and
// returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommandState()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	rootCmd.SetArgs(nil)
	return buf.String(), err
}
