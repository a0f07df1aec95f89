// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents successful completion of an operation.
	// Used for: book added, issued, returned.
	Success = "✓"

	// Error represents failures.
	// Used for: unknown isbn, rejected transitions, persistence failures.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: empty inventory, no search results.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"
)
