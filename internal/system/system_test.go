package system

import (
	"context"
	"strings"
	"testing"
)

func TestBuildEnviron_IgnoreKeepsOnlyListed(t *testing.T) {
	t.Setenv("CELLAR_TEST_KEEP", "kept")
	t.Setenv("CELLAR_TEST_DROP", "dropped")

	env := BuildEnviron(true, []string{"CELLAR_TEST_KEEP"}, nil)

	if len(env) != 1 || env[0] != "CELLAR_TEST_KEEP=kept" {
		t.Errorf("env = %v, want only the kept variable", env)
	}
}

func TestBuildEnviron_IgnoreSkipsMissing(t *testing.T) {
	env := BuildEnviron(true, []string{"CELLAR_TEST_DOES_NOT_EXIST"}, nil)
	if len(env) != 0 {
		t.Errorf("env = %v, want empty", env)
	}
}

func TestBuildEnviron_UnsetRemoves(t *testing.T) {
	t.Setenv("CELLAR_TEST_STAYS", "yes")
	t.Setenv("CELLAR_TEST_GOES", "no")

	env := BuildEnviron(false, nil, []string{"CELLAR_TEST_GOES"})

	var stays, goes bool
	for _, kv := range env {
		if strings.HasPrefix(kv, "CELLAR_TEST_STAYS=") {
			stays = true
		}
		if strings.HasPrefix(kv, "CELLAR_TEST_GOES=") {
			goes = true
		}
	}

	if !stays {
		t.Error("unrelated variable was dropped")
	}
	if goes {
		t.Error("unset variable survived")
	}
}

func TestMockExecutor_Records(t *testing.T) {
	m := NewMockExecutor()

	env := []string{"A=1"}
	if err := m.ExecuteInteractive(context.Background(), env, "tool", "--flag"); err != nil {
		t.Fatalf("ExecuteInteractive failed: %v", err)
	}

	call := m.LastCall()
	if call == nil {
		t.Fatal("no call recorded")
	}
	if call.Method != "ExecuteInteractive" || call.Name != "tool" {
		t.Errorf("call = %+v", call)
	}
	if len(call.Env) != 1 || call.Env[0] != "A=1" {
		t.Errorf("env = %v", call.Env)
	}
}
