package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/audit"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/profile"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
	"github.com/cellar-works/cellar-ctl/internal/tui"
)

var profileName string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profile generations",
}

var profileSetCmd = &cobra.Command{
	Use:   "set <installable>",
	Short: "Point the profile at a new target",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSet,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the profile's generations",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileRollbackCmd = &cobra.Command{
	Use:   "rollback [generation]",
	Short: "Switch the profile to an earlier generation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileRollback,
}

var profilePickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a generation interactively",
	Args:  cobra.NoArgs,
	RunE:  runProfilePick,
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the profile's recorded lifecycle events",
	Args:  cobra.NoArgs,
	RunE:  runProfileHistory,
}

func init() {
	profileCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Profile name (defaults to the configured profile)")
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileRollbackCmd)
	profileCmd.AddCommand(profilePickCmd)
	profileCmd.AddCommand(profileHistoryCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	r, err := getResolver()
	if err != nil {
		return err
	}

	installables, err := resolve.ParseAll(args)
	if err != nil {
		return err
	}

	buildables, err := r.ResolveToBuildables(installables, resolve.RealiseFull)
	if err != nil {
		return err
	}

	link, err := profileLink(profileName)
	if err != nil {
		return err
	}

	s, err := getStore()
	if err != nil {
		return err
	}

	if err := profile.UpdateProfileFromBuildables(s, link, buildables); err != nil {
		return err
	}

	target, err := profile.Current(link)
	if err != nil {
		return err
	}

	recordEvent(audit.EventPublish, profileName, fmt.Sprintf("target=%s", target))
	logSuccess("Profile now points at %s", target)
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	link, err := profileLink(profileName)
	if err != nil {
		return err
	}

	gens, err := profile.Generations(link)
	if err != nil {
		return err
	}

	if len(gens) == 0 {
		logInfo("Profile has no generations. Create one with: cellar-ctl profile set <installable>")
		return nil
	}

	current, err := profile.CurrentGeneration(link)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GENERATION\tTARGET\tCURRENT")
	for _, g := range gens {
		marker := ""
		if current != nil && g.Number == current.Number {
			marker = "*"
		}
		target := string(g.Target)
		if target == "" {
			target = "(dangling)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.Number, target, marker)
	}
	return w.Flush()
}

func runProfileRollback(cmd *cobra.Command, args []string) error {
	n := 0
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return errors.UsageErrorf("invalid generation number %q", args[0])
		}
		n = parsed
	}

	link, err := profileLink(profileName)
	if err != nil {
		return err
	}

	logging.Debug("rolling back profile", "profile", link, "generation", n)

	gen, err := profile.Rollback(link, n)
	if err != nil {
		return err
	}

	recordEvent(audit.EventRollback, profileName, fmt.Sprintf("generation=%d", gen.Number))
	logSuccess("Switched to generation %d (%s)", gen.Number, gen.Target)
	return nil
}

func runProfilePick(cmd *cobra.Command, args []string) error {
	link, err := profileLink(profileName)
	if err != nil {
		return err
	}

	gens, err := profile.Generations(link)
	if err != nil {
		return err
	}

	current, err := profile.CurrentGeneration(link)
	if err != nil {
		return err
	}
	currentNumber := 0
	if current != nil {
		currentNumber = current.Number
	}

	result, err := tui.RunPicker(profileNameOrDefault(profileName), gens, currentNumber)
	if err != nil {
		return err
	}

	switch result.Action {
	case tui.ActionSwitch:
		if err := profile.SwitchProfile(link, result.Generation); err != nil {
			return err
		}
		recordEvent(audit.EventSwitch, profileName, fmt.Sprintf("generation=%d", result.Generation.Number))
		logSuccess("Switched to generation %d (%s)", result.Generation.Number, result.Generation.Target)
	default:
		logWarning("No generation selected")
	}
	return nil
}

func runProfileHistory(cmd *cobra.Command, args []string) error {
	name := profileNameOrDefault(profileName)

	events, err := auditLogger().Events(name)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		logInfo("No recorded events for profile %s", name)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tEVENT\tDETAILS")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Details)
	}
	return w.Flush()
}
