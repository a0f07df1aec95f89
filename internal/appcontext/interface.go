// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/pkg/inventory"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/stacks/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Inventory returns the book inventory, loading it lazily on first use.
	// The same instance is returned for the life of the process.
	Inventory() (*inventory.Inventory, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored terminal output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
