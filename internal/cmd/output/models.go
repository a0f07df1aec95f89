package output

import (
	"io"

	"github.com/agentstation/stacks/internal/cmd/table"
	"github.com/agentstation/stacks/pkg/books"
)

// FormatBooks handles the common pattern of formatting books for output.
// Table output gets display rows; structured formats get the same records
// that are written to storage.
func FormatBooks(w io.Writer, list []*books.Book, format Format) error {
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case FormatJSON, FormatYAML:
		outputData = books.Records(list)
	default:
		outputData = table.BooksToTableData(list)
	}

	return formatter.Format(w, outputData)
}
