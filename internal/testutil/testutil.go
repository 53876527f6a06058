// Package testutil provides test utilities for command-level tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cellar-works/cellar-ctl/internal/app"
	"github.com/cellar-works/cellar-ctl/internal/config"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	Store   *store.LocalStore
	App     *app.App
	cleanup func()
}

// NewTestEnv creates a new test environment with a local store in a
// temp directory and installs it as the app default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		ConfigDir:   filepath.Join(tmpDir, "config"),
		StateDir:    tmpDir,
		StoreDir:    filepath.Join(tmpDir, "store"),
		DBDir:       filepath.Join(tmpDir, "db"),
		ProfilesDir: filepath.Join(tmpDir, "profiles"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.ProfilesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	s, err := store.NewLocalStore(paths.StoreDir, paths.DBDir)
	if err != nil {
		t.Fatalf("Failed to open local store: %v", err)
	}

	testApp := app.New(
		app.WithPaths(paths),
		app.WithStore(s),
		app.WithConfig(&config.Config{
			StateDir:       paths.StateDir,
			StoreDir:       paths.StoreDir,
			ProfilesDir:    paths.ProfilesDir,
			DefaultProfile: config.DefaultProfileName,
		}),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		Store:  s,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}

	t.Cleanup(env.Cleanup)
	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// AddObject imports a file with the given contents into the test store
func (e *TestEnv) AddObject(name, content string, references ...store.StorePath) store.StorePath {
	e.T.Helper()

	src := filepath.Join(e.T.TempDir(), name)
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write object source: %v", err)
	}

	p, err := e.Store.Add(src, name, references)
	if err != nil {
		e.T.Fatalf("Failed to add object to store: %v", err)
	}
	return p
}

// AddProgram imports a directory containing bin/<name> into the test
// store and returns its path
func (e *TestEnv) AddProgram(name, script string) store.StorePath {
	e.T.Helper()

	src := filepath.Join(e.T.TempDir(), name)
	if err := os.MkdirAll(filepath.Join(src, "bin"), 0755); err != nil {
		e.T.Fatalf("Failed to create program tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "bin", name), []byte(script), 0755); err != nil {
		e.T.Fatalf("Failed to write program: %v", err)
	}

	p, err := e.Store.Add(src, name, nil)
	if err != nil {
		e.T.Fatalf("Failed to add program to store: %v", err)
	}
	return p
}

// ProfilePath returns the on-disk path for a named profile in the
// test profiles directory
func (e *TestEnv) ProfilePath(name string) string {
	e.T.Helper()

	link, err := config.ProfileLink(e.Paths.ProfilesDir, name)
	if err != nil {
		e.T.Fatalf("Invalid profile name %q: %v", name, err)
	}
	return link
}
