package cmd

import (
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/cellar-works/cellar-ctl/internal/app"
	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/resolve"
	"github.com/cellar-works/cellar-ctl/internal/system"
)

var (
	runIgnoreEnv bool
	runKeep      []string
	runUnset     []string
	runCommand   string
)

var runCmd = &cobra.Command{
	Use:   "run <installable> [-- args...]",
	Short: "Run a program from a store path",
	Long: `run resolves a single installable, requires it on disk, and replaces
the current process with <path>/bin/<program>. The program name defaults
to the store object's name.

The child environment is constructed explicitly: --ignore-environment
starts from an empty environment, --keep carries named variables over,
and --unset removes them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runIgnoreEnv, "ignore-environment", "i", false, "Start with an empty environment")
	runCmd.Flags().StringArrayVarP(&runKeep, "keep", "k", nil, "Keep the named environment variable (with -i)")
	runCmd.Flags().StringArrayVarP(&runUnset, "unset", "u", nil, "Unset the named environment variable")
	runCmd.Flags().StringVarP(&runCommand, "command", "c", "", "Program name under bin/ (defaults to the object name)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	r, err := getResolver()
	if err != nil {
		return err
	}

	installables, err := resolve.ParseAll(args[:1])
	if err != nil {
		return err
	}

	target, err := r.ResolveOne(installables, resolve.RealiseFull, resolve.OperateOutput)
	if err != nil {
		return err
	}

	lfs := app.Default.LocalStore()
	if lfs == nil {
		return errors.StoreCapabilityError("run")
	}

	program := runCommand
	if program == "" {
		program = target.Name()
	}

	// Contain the executable lookup inside the object's directory even
	// when bin/ contains symlinks.
	executable, err := securejoin.SecureJoin(lfs.RealPath(target), filepath.Join("bin", program))
	if err != nil {
		return errors.StoreError("resolving executable path", err)
	}

	env := system.BuildEnviron(runIgnoreEnv, runKeep, runUnset)
	progArgs := args[1:]

	logging.Debug("executing program", "command", shellquote.Join(append([]string{executable}, progArgs...)...))

	return system.DefaultExecutor().ReplaceProcess(env, executable, progArgs...)
}
