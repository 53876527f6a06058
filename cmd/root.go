package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cellar-ctl",
	Short: "Content-addressed store and profile management CLI",
	Long: `cellar-ctl manages a content-addressed object store and named profiles.

Store objects are immutable and identified by <digest>-<name> paths.
Commands accept installables: a store path, a symbolic name, or either
with a ^output selection. Profiles are atomically-updated pointers into
the store, backed by a numbered generation history for rollback.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
