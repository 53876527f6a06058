package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/cellar-works/cellar-ctl/internal/errors"
	"github.com/cellar-works/cellar-ctl/internal/testutil"
)

func TestVerifyCommand_ConsistentStore(t *testing.T) {
	env := testutil.NewTestEnv(t)
	p := env.AddObject("hello", "hello contents")

	out, err := executeCommand(t, "verify")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !strings.Contains(out, string(p)) || !strings.Contains(out, "ok") {
		t.Errorf("Expected ok listing for %s, got %q", p, out)
	}
}

func TestVerifyCommand_MissingObject(t *testing.T) {
	env := testutil.NewTestEnv(t)
	p := env.AddObject("hello", "hello contents")

	if err := os.RemoveAll(env.Store.RealPath(p)); err != nil {
		t.Fatalf("Failed to remove object files: %v", err)
	}

	out, err := executeCommand(t, "verify")
	if !errors.IsCode(err, errors.ExitStore) {
		t.Errorf("Expected store error, got %v", err)
	}
	if !strings.Contains(out, "missing") {
		t.Errorf("Expected missing status in listing, got %q", out)
	}
}

func TestVerifyCommand_DanglingProfileGeneration(t *testing.T) {
	env := testutil.NewTestEnv(t)
	p := env.AddObject("hello", "hello contents")

	if _, err := executeCommand(t, "profile", "set", "hello", "-p", "dev"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if err := os.RemoveAll(env.Store.RealPath(p)); err != nil {
		t.Fatalf("Failed to remove object files: %v", err)
	}

	_, err := executeCommand(t, "verify", "--profile", "dev")
	if !errors.IsCode(err, errors.ExitStore) {
		t.Errorf("Expected store error for dangling generation, got %v", err)
	}
}

func TestProfileHistoryCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddObject("hello", "hello contents")
	env.AddObject("world", "world contents")

	for _, name := range []string{"hello", "world"} {
		if _, err := executeCommand(t, "profile", "set", name, "-p", "dev"); err != nil {
			t.Fatalf("profile set %s failed: %v", name, err)
		}
	}
	if _, err := executeCommand(t, "profile", "rollback", "-p", "dev"); err != nil {
		t.Fatalf("profile rollback failed: %v", err)
	}

	out, err := executeCommand(t, "profile", "history", "-p", "dev")
	if err != nil {
		t.Fatalf("profile history failed: %v", err)
	}

	for _, event := range []string{"publish", "rollback"} {
		if !strings.Contains(out, event) {
			t.Errorf("Expected %s event in history, got %q", event, out)
		}
	}
	if n := strings.Count(out, "publish"); n != 2 {
		t.Errorf("Expected 2 publish events, got %d in %q", n, out)
	}
}

func TestProfileHistoryCommand_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	if _, err := executeCommand(t, "profile", "history", "-p", "dev"); err != nil {
		t.Fatalf("profile history failed on empty log: %v", err)
	}
}
