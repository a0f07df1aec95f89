package constants_test

import (
	"fmt"
	"path/filepath"

	"github.com/agentstation/stacks/pkg/constants"
)

// Example demonstrates resolving the storage and log files for a data directory
func Example() {
	dir := filepath.Join("/opt", "stacks")

	fmt.Println(filepath.Join(dir, constants.StorageFileName))
	fmt.Println(filepath.Join(dir, constants.LogFileName))
	fmt.Printf("files are created with %o permissions\n", constants.FilePermissions)
	// Output:
	// /opt/stacks/library_books.json
	// /opt/stacks/library.log
	// files are created with 644 permissions
}
