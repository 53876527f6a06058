package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/app"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

var (
	addName string
	addRefs []string
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Import a file or directory into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Object name (defaults to the source base name)")
	addCmd.Flags().StringArrayVar(&addRefs, "ref", nil, "Store path the object references (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	source := args[0]

	name := addName
	if name == "" {
		name = filepath.Base(source)
	}

	lfs := app.Default.LocalStore()
	if lfs == nil {
		return errors.StoreCapabilityError("add")
	}

	refs := make([]store.StorePath, 0, len(addRefs))
	for _, raw := range addRefs {
		p, err := store.ParseStorePath(raw)
		if err != nil {
			return err
		}
		refs = append(refs, p)
	}

	logging.Debug("adding to store", "source", source, "name", name)

	p, err := lfs.Add(source, name, refs)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
