// Package system abstracts process spawning to enable testing. The
// environment of a spawned process is always passed in explicitly as a
// value; nothing here mutates the process-wide environment.
package system

import (
	"context"
	"os"
	"os/exec"
	"syscall"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// ExecuteInteractive runs a command with stdin/stdout/stderr
	// connected to the terminal and the given environment.
	ExecuteInteractive(ctx context.Context, env []string, name string, args ...string) error

	// ReplaceProcess replaces the current process with the given
	// command and environment (exec syscall).
	ReplaceProcess(env []string, name string, args ...string) error
}

// defaultExecutor is the process-wide executor instance.
var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (used for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// BuildEnviron constructs a subprocess environment from the current one.
// When ignore is true the result contains only the kept variables;
// otherwise it is the current environment minus the unset names. The
// current process environment is read, never written.
func BuildEnviron(ignore bool, keep, unset []string) []string {
	if ignore {
		var env []string
		for _, name := range keep {
			if val, ok := os.LookupEnv(name); ok {
				env = append(env, name+"="+val)
			}
		}
		return env
	}

	drop := make(map[string]bool, len(unset))
	for _, name := range unset {
		drop[name] = true
	}

	var env []string
	for _, kv := range os.Environ() {
		name := kv
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				name = kv[:i]
				break
			}
		}
		if !drop[name] {
			env = append(env, kv)
		}
	}
	return env
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) ExecuteInteractive(ctx context.Context, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (e *osExecutor) ReplaceProcess(env []string, name string, args ...string) error {
	binary, err := exec.LookPath(name)
	if err != nil {
		return err
	}

	// Build argv with program name as first element
	argv := append([]string{name}, args...)

	return syscall.Exec(binary, argv, env)
}
