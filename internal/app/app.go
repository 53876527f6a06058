// Package app provides the application context for cellar-ctl.
// It allows dependency injection for testing.
package app

import (
	"github.com/cellar-works/cellar-ctl/internal/config"
	"github.com/cellar-works/cellar-ctl/internal/logging"
	"github.com/cellar-works/cellar-ctl/internal/store"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Store is the object store backend
	Store store.Store

	// Config is the loaded host configuration
	Config *config.Config
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithStore sets a custom store backend
func WithStore(s store.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithConfig sets a custom host config
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// New creates a new App with the given options.
// If a store is not provided via WithStore, the local backend under the
// configured paths is opened.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.Load(config.DefaultConfigDir)
		if err != nil {
			logging.Debug("failed to load host config", "error", err)
			cfg = &config.Config{}
		}
		app.Config = cfg
	}

	if app.Paths == nil {
		app.Paths = config.PathsFor(app.Config)
	}

	if app.Store == nil {
		s, err := store.NewLocalStore(app.Paths.StoreDir, app.Paths.DBDir)
		if err != nil {
			logging.Debug("failed to open local store", "error", err)
		} else {
			app.Store = s
		}
	}

	return app
}

// LocalStore returns the store as a LocalFSStore when the backend has
// local filesystem semantics, or nil otherwise.
func (a *App) LocalStore() store.LocalFSStore {
	if lfs, ok := a.Store.(store.LocalFSStore); ok {
		return lfs
	}
	return nil
}

// DefaultProfile returns the configured default profile name.
func (a *App) DefaultProfile() string {
	if a.Config != nil && a.Config.DefaultProfile != "" {
		return a.Config.DefaultProfile
	}
	return config.DefaultProfileName
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
