package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/system"
	"github.com/cellar-works/cellar-ctl/internal/testutil"
)

func withMockExecutor(t *testing.T) *system.MockExecutor {
	t.Helper()
	mock := system.NewMockExecutor()
	prev := system.DefaultExecutor()
	system.SetDefaultExecutor(mock)
	t.Cleanup(func() { system.SetDefaultExecutor(prev) })
	return mock
}

func TestRunCommand_ExecutesProgram(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	p := env.AddProgram("hello", "#!/bin/sh\necho hello\n")

	_, err := executeCommand(t, "run", "hello")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	call := mock.LastCall()
	if call == nil {
		t.Fatal("Expected an executor call")
	}
	if call.Method != "ReplaceProcess" {
		t.Errorf("Expected ReplaceProcess, got %s", call.Method)
	}

	want := filepath.Join(env.Store.RealPath(p), "bin", "hello")
	if call.Name != want {
		t.Errorf("Expected executable %s, got %s", want, call.Name)
	}
}

func TestRunCommand_ForwardsArguments(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	env.AddProgram("hello", "#!/bin/sh\necho hello\n")

	_, err := executeCommand(t, "run", "hello", "--", "-n", "world")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	call := mock.LastCall()
	if call == nil {
		t.Fatal("Expected an executor call")
	}
	if len(call.Args) != 2 || call.Args[0] != "-n" || call.Args[1] != "world" {
		t.Errorf("Expected forwarded args [-n world], got %v", call.Args)
	}
}

func TestRunCommand_CustomProgramName(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	p := env.AddProgram("coreutils", "#!/bin/sh\n")

	_, err := executeCommand(t, "run", "coreutils", "-c", "ls")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := filepath.Join(env.Store.RealPath(p), "bin", "ls")
	if call := mock.LastCall(); call == nil || call.Name != want {
		t.Errorf("Expected executable %s, got %+v", want, call)
	}
}

func TestRunCommand_IgnoreEnvironmentKeepsListed(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	env.AddProgram("hello", "#!/bin/sh\n")

	t.Setenv("CELLAR_TEST_KEEP", "kept")
	t.Setenv("CELLAR_TEST_DROP", "dropped")

	_, err := executeCommand(t, "run", "-i", "-k", "CELLAR_TEST_KEEP", "hello")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	call := mock.LastCall()
	if call == nil {
		t.Fatal("Expected an executor call")
	}

	var sawKeep, sawDrop bool
	for _, kv := range call.Env {
		if kv == "CELLAR_TEST_KEEP=kept" {
			sawKeep = true
		}
		if strings.HasPrefix(kv, "CELLAR_TEST_DROP=") {
			sawDrop = true
		}
	}
	if !sawKeep {
		t.Error("Expected kept variable in child environment")
	}
	if sawDrop {
		t.Error("Expected dropped variable to be absent")
	}
}

func TestRunCommand_UnsetRemovesVariable(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	env.AddProgram("hello", "#!/bin/sh\n")

	t.Setenv("CELLAR_TEST_UNSET", "present")

	_, err := executeCommand(t, "run", "-u", "CELLAR_TEST_UNSET", "hello")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	call := mock.LastCall()
	if call == nil {
		t.Fatal("Expected an executor call")
	}
	for _, kv := range call.Env {
		if strings.HasPrefix(kv, "CELLAR_TEST_UNSET=") {
			t.Error("Expected unset variable to be absent")
		}
	}
}

func TestRunCommand_UnknownInstallable(t *testing.T) {
	testutil.NewTestEnv(t)
	mock := withMockExecutor(t)

	_, err := executeCommand(t, "run", "no-such-program")
	if !errors.IsCode(err, errors.ExitResolution) {
		t.Errorf("Expected resolution error, got %v", err)
	}
	if mock.LastCall() != nil {
		t.Error("Expected no executor call on resolution failure")
	}
}

func TestRunCommand_MissingOnDisk(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mock := withMockExecutor(t)
	p := env.AddProgram("hello", "#!/bin/sh\n")

	if err := os.RemoveAll(env.Store.RealPath(p)); err != nil {
		t.Fatalf("Failed to remove object files: %v", err)
	}

	_, err := executeCommand(t, "run", "hello")
	if !errors.IsCode(err, errors.ExitStore) {
		t.Errorf("Expected store error, got %v", err)
	}
	if mock.LastCall() != nil {
		t.Error("Expected no executor call for a missing object")
	}
}
