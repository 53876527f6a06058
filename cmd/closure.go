package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
)

var closureFlags pathSetFlags

var closureCmd = &cobra.Command{
	Use:   "closure [installables...]",
	Short: "Print the reference closure of store paths",
	Long: `closure resolves installables and prints every store path reachable
from them through reference edges. Pass --no-recursive to print only
the resolved paths themselves.`,
	RunE: runClosure,
}

func init() {
	closureFlags.register(closureCmd, true)
	rootCmd.AddCommand(closureCmd)
}

func runClosure(cmd *cobra.Command, args []string) error {
	logging.Debug("computing closure", "args", args, "all", closureFlags.all)

	selected, err := selectPaths(args, closureFlags.selection(resolve.RealiseNothing))
	if err != nil {
		return err
	}

	for _, p := range selected {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
