package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
)

var pathsFlags pathSetFlags

var pathsCmd = &cobra.Command{
	Use:   "paths [installables...]",
	Short: "Resolve installables to store paths",
	RunE:  runPaths,
}

func init() {
	pathsFlags.register(pathsCmd, false)
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	logging.Debug("resolving installables", "args", args, "all", pathsFlags.all)

	selected, err := selectPaths(args, pathsFlags.selection(resolve.RealiseNothing))
	if err != nil {
		return err
	}

	for _, p := range selected {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
