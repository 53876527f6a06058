package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/app"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/verify"
)

var verifyProfileName string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check store and profile integrity",
	Long: `verify compares the store's metadata against the objects on disk and
reports objects with missing files, broken references, or no metadata.
With --profile it additionally checks the profile's generations for
dangling store targets.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyProfileName, "profile", "", "Also check the named profile's generations")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	lfs := app.Default.LocalStore()
	if lfs == nil {
		return errors.StoreCapabilityError("verify")
	}

	results, err := verify.CheckStore(lfs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tSTATUS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Path, r.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if verifyProfileName != "" {
		link, err := profileLink(verifyProfileName)
		if err != nil {
			return err
		}
		genResults, err := verify.CheckProfile(lfs, link)
		if err != nil {
			return err
		}
		dangling := 0
		for _, gr := range genResults {
			if gr.Dangling {
				logWarning("Generation %d of profile %s is dangling", gr.Generation.Number, verifyProfileName)
				dangling++
			}
		}
		if dangling > 0 {
			return errors.StoreError(fmt.Sprintf("profile %s has %d dangling generations", verifyProfileName, dangling), nil)
		}
	}

	if summary := verify.GetSummary(results); summary != verify.StatusOK {
		return errors.StoreError(fmt.Sprintf("store verification found %s objects", summary), nil)
	}

	logSuccess("Store is consistent (%d objects)", len(results))
	return nil
}
