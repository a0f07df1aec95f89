// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/stacks/internal/cmd/emoji"
	"github.com/agentstation/stacks/pkg/books"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// BooksToTableData converts books to table format.
func BooksToTableData(list []*books.Book) Data {
	rows := make([][]string, 0, len(list))
	for _, book := range list {
		rows = append(rows, []string{
			book.Title,
			book.Author,
			book.ISBN,
			FormatStatus(book.Status),
		})
	}

	return Data{
		Headers:         []string{"Title", "Author", "ISBN", "Status"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter},
	}
}

// FormatStatus renders a status for display, marking available books.
func FormatStatus(status books.Status) string {
	label := cases.Title(language.English).String(status.String())
	if status == books.StatusAvailable {
		return emoji.Success + " " + label
	}
	return label
}
