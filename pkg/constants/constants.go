// Package constants provides shared constants used throughout the stacks codebase.
// This includes file names, file permissions, and default configuration values
// that should be consistent across the application.
package constants

// File name constants define where stacks keeps its state.
const (
	// StorageFileName is the JSON file holding the serialized inventory.
	StorageFileName = "library_books.json"

	// LogFileName is the append-only diagnostic log written beside the storage file.
	LogFileName = "library.log"

	// ConfigFileName is the config file base name searched in $HOME and the working directory.
	ConfigFileName = ".stacks"

	// QuarantineSuffix is inserted between the storage file name and a timestamp
	// when unparseable storage content is set aside before a reset.
	QuarantineSuffix = ".corrupt-"

	// QuarantineTimeFormat is the timestamp layout used in quarantine file names.
	QuarantineTimeFormat = "20060102T150405.000000000Z"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Serialization constants
const (
	// JSONIndent is the indentation used when writing the storage file.
	JSONIndent = "    "
)

// Environment constants
const (
	// EnvPrefix is the prefix for environment variables read by viper (STACKS_DATA_DIR, ...).
	EnvPrefix = "STACKS"
)
