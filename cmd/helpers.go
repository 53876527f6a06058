package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/app"
	"github.com/cellar-works/cellar-ctl/internal/audit"
	"github.com/cellar-works/cellar-ctl/internal/config"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// paths returns the default paths configuration.
// This is a helper to reduce repetition in commands.
func paths() *config.Paths {
	return app.Default.Paths
}

// getStore returns the application store backend, or an error when no
// backend could be opened.
func getStore() (store.Store, error) {
	if app.Default.Store == nil {
		return nil, errors.StoreError("no store backend available", nil)
	}
	return app.Default.Store, nil
}

// getResolver returns a resolver over the application store.
func getResolver() (*resolve.Resolver, error) {
	s, err := getStore()
	if err != nil {
		return nil, err
	}
	return resolve.NewResolver(s), nil
}

// profileNameOrDefault substitutes the configured default profile for
// an empty name.
func profileNameOrDefault(name string) string {
	if name == "" {
		return app.Default.DefaultProfile()
	}
	return name
}

// profileLink resolves a profile name (or the configured default when
// name is empty) to its on-disk link path.
func profileLink(name string) (string, error) {
	return config.ProfileLink(paths().ProfilesDir, profileNameOrDefault(name))
}

// auditLogger returns the event logger for profile lifecycle events.
func auditLogger() *audit.Logger {
	return audit.NewLogger(paths().StateDir)
}

// recordEvent appends a profile lifecycle event, warning instead of
// failing when the log cannot be written.
func recordEvent(eventType audit.EventType, name, details string) {
	if err := auditLogger().LogEvent(eventType, profileNameOrDefault(name), details); err != nil {
		logging.Warn("failed to record audit event", "error", err)
	}
}

// pathSetFlags is the shared flag set of commands that operate on a set
// of store paths: explicit installables or --all, with closure
// expansion governed by a single recursive toggle whose default polarity
// the command chooses.
type pathSetFlags struct {
	all              bool
	recursive        bool
	noRecursive      bool
	derivation       bool
	recursiveDefault bool
}

// register wires the flags onto cmd. Commands that default to recursive
// expansion get --no-recursive; the others get -r/--recursive.
func (f *pathSetFlags) register(cmd *cobra.Command, recursiveDefault bool) {
	f.recursiveDefault = recursiveDefault

	cmd.Flags().BoolVar(&f.all, "all", false, "Apply operation to the entire store")
	cmd.Flags().BoolVar(&f.derivation, "derivation", false, "Operate on deriver paths instead of outputs")
	if recursiveDefault {
		cmd.Flags().BoolVar(&f.noRecursive, "no-recursive", false, "Apply operation to specified paths only")
	} else {
		cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "Apply operation to closure of the specified paths")
	}
}

func (f *pathSetFlags) recursiveEnabled() bool {
	if f.recursiveDefault {
		return !f.noRecursive
	}
	return f.recursive
}

// reset restores the flag values between test invocations.
func (f *pathSetFlags) reset() {
	f.all = false
	f.recursive = false
	f.noRecursive = false
	f.derivation = false
}

// selection builds the resolver selection for the given realise mode.
func (f *pathSetFlags) selection(mode resolve.Realise) resolve.Selection {
	operateOn := resolve.OperateOutput
	if f.derivation {
		operateOn = resolve.OperateDeriver
	}
	return resolve.Selection{
		All:       f.all,
		Recursive: f.recursiveEnabled(),
		Mode:      mode,
		OperateOn: operateOn,
	}
}

// selectPaths parses args as installables and applies the selection.
func selectPaths(args []string, sel resolve.Selection) ([]store.StorePath, error) {
	r, err := getResolver()
	if err != nil {
		return nil, err
	}

	installables, err := resolve.ParseAll(args)
	if err != nil {
		return nil, err
	}

	return r.SelectPaths(installables, sel)
}
