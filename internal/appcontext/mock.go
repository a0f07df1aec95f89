package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/pkg/inventory"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	InventoryFunc    func() (*inventory.Inventory, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Inventory returns an inventory using the mock function or nil.
func (m *Mock) Inventory() (*inventory.Inventory, error) {
	if m.InventoryFunc != nil {
		return m.InventoryFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock function result or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
