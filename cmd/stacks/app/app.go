// Package app provides the application context and dependency management
// for the stacks CLI. It centralizes configuration, logging, and the
// lifecycle of the book inventory.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/internal/cmd/cmdutil"
	"github.com/agentstation/stacks/pkg/errors"
	"github.com/agentstation/stacks/pkg/inventory"
)

// App represents the stacks application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger and the log file behind it
	logger         *zerolog.Logger
	logCloser      io.Closer
	loggerInjected bool

	// Global flags of the current root command
	flags *cmdutil.GlobalFlags

	// Terminal streams used by the interactive shell
	stdin  io.Reader
	stdout io.Writer

	// Inventory instance (lazy-initialized, singleton)
	mu        sync.RWMutex
	inventory *inventory.Inventory
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config file, and can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}

	// Apply custom options first so an injected config skips loading
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		app.resetLogger()
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Inventory returns the inventory, loading it from storage on first use.
func (a *App) Inventory() (*inventory.Inventory, error) {
	a.mu.RLock()
	if a.inventory != nil {
		inv := a.inventory
		a.mu.RUnlock()
		return inv, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.inventory != nil {
		return a.inventory, nil
	}

	inv, err := inventory.New(a.buildInventoryOptions()...)
	if err != nil {
		return nil, err
	}

	a.inventory = inv
	return inv, nil
}

// Shutdown persists any unsaved changes and closes the log file.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	inv := a.inventory
	a.mu.RUnlock()

	var err error
	if inv != nil && inv.Dirty() {
		if err = inv.Flush(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to save books during shutdown")
		}
	}

	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
	return err
}

// resetLogger rebuilds the logger from the current config. A loaded
// inventory is switched to the new logger before the previous log file is
// closed, so no event is written to a closed file.
func (a *App) resetLogger() {
	logger, closer := NewLogger(a.config)
	previous := a.logCloser
	a.logger = &logger
	a.logCloser = closer

	a.mu.RLock()
	if a.inventory != nil {
		a.inventory.SetLogger(a.logger)
	}
	a.mu.RUnlock()

	if previous != nil {
		_ = previous.Close()
	}
}

// buildInventoryOptions constructs inventory options from the app configuration.
func (a *App) buildInventoryOptions() []inventory.Option {
	opts := []inventory.Option{
		inventory.WithLogger(a.logger),
		inventory.WithQuarantine(a.config.Quarantine),
	}

	if a.config.DataDir != "" {
		opts = append(opts, inventory.WithDir(a.config.DataDir))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.loggerInjected = logger != nil
		return nil
	}
}

// WithInventory sets a custom inventory instance (useful for testing).
func WithInventory(inv *inventory.Inventory) Option {
	return func(a *App) error {
		a.inventory = inv
		return nil
	}
}

// WithIO sets the streams used by the interactive shell.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.stdin = in
		a.stdout = out
		return nil
	}
}
