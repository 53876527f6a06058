package cmd

import (
	"strings"
	"testing"

	"github.com/cellar-works/cellar-ctl/internal/testutil"
)

func TestClosureCommand_RecursiveByDefault(t *testing.T) {
	env := testutil.NewTestEnv(t)
	leaf := env.AddObject("libc", "libc contents")
	mid := env.AddObject("libfoo", "lib contents", leaf)
	top := env.AddObject("app", "app contents", mid)

	out, err := executeCommand(t, "closure", string(top))
	if err != nil {
		t.Fatalf("closure failed: %v", err)
	}

	for _, p := range []string{string(top), string(mid), string(leaf)} {
		if !strings.Contains(out, p) {
			t.Errorf("Expected closure to contain %s, got %q", p, out)
		}
	}
}

func TestClosureCommand_NoRecursive(t *testing.T) {
	env := testutil.NewTestEnv(t)
	dep := env.AddObject("libfoo", "lib contents")
	top := env.AddObject("app", "app contents", dep)

	out, err := executeCommand(t, "closure", "--no-recursive", string(top))
	if err != nil {
		t.Fatalf("closure --no-recursive failed: %v", err)
	}

	if strings.TrimSpace(out) != string(top) {
		t.Errorf("Expected only %s, got %q", top, out)
	}
}

func TestClosureCommand_SharedDependencyOnce(t *testing.T) {
	env := testutil.NewTestEnv(t)
	shared := env.AddObject("libc", "libc contents")
	a := env.AddObject("alpha", "a", shared)
	b := env.AddObject("beta", "b", shared)

	out, err := executeCommand(t, "closure", string(a), string(b))
	if err != nil {
		t.Fatalf("closure failed: %v", err)
	}

	if n := strings.Count(out, string(shared)); n != 1 {
		t.Errorf("Expected shared dependency once, got %d occurrences in %q", n, out)
	}
}
