package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/audit"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/profile"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
)

var (
	realiseFlags   pathSetFlags
	realiseDryRun  bool
	realiseProfile string
)

var realiseCmd = &cobra.Command{
	Use:   "realise [installables...]",
	Short: "Realise installables and optionally publish them to a profile",
	Long: `realise resolves installables and requires their objects to be present
on disk. With --profile the single resulting path is published as a new
profile generation.`,
	RunE: runRealise,
}

func init() {
	realiseFlags.register(realiseCmd, false)
	realiseCmd.Flags().BoolVar(&realiseDryRun, "dry-run", false, "Report what would be realised without requiring it")
	realiseCmd.Flags().StringVar(&realiseProfile, "profile", "", "Publish the result as a new generation of the named profile")
	rootCmd.AddCommand(realiseCmd)
}

func runRealise(cmd *cobra.Command, args []string) error {
	mode := resolve.RealiseFull
	if realiseDryRun {
		mode = resolve.RealiseDryRun
	}

	r, err := getResolver()
	if err != nil {
		return err
	}

	installables, err := resolve.ParseAll(args)
	if err != nil {
		return err
	}

	sel := realiseFlags.selection(mode)

	if realiseProfile != "" {
		if sel.All || sel.Recursive {
			return errors.UsageError("'--profile' expects explicit installables")
		}
		if realiseDryRun {
			return errors.UsageError("'--profile' cannot be combined with '--dry-run'")
		}

		buildables, err := r.ResolveToBuildables(installables, mode)
		if err != nil {
			return err
		}

		link, err := profileLink(realiseProfile)
		if err != nil {
			return err
		}

		s, err := getStore()
		if err != nil {
			return err
		}

		logging.Debug("publishing to profile", "profile", link)
		if err := profile.UpdateProfileFromBuildables(s, link, buildables); err != nil {
			return err
		}

		target, err := profile.Current(link)
		if err != nil {
			return err
		}

		recordEvent(audit.EventPublish, realiseProfile, fmt.Sprintf("target=%s", target))
		logSuccess("Profile %s now points at %s", realiseProfile, target)
		return nil
	}

	selected, err := r.SelectPaths(installables, sel)
	if err != nil {
		return err
	}

	for _, p := range selected {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
