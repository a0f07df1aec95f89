package books

import (
	"fmt"

	"github.com/agentstation/stacks/pkg/errors"
)

// resource is the name used for books in error messages.
const resource = "book"

// Book is a single catalog entry.
type Book struct {
	Title  string
	Author string
	ISBN   string // opaque identifier, uniqueness is not enforced
	Status Status
}

// New creates an available book. Text fields are not validated.
func New(title, author, isbn string) *Book {
	return NewWithStatus(title, author, isbn, StatusAvailable)
}

// NewWithStatus creates a book in the given state, as when restoring from storage.
func NewWithStatus(title, author, isbn string, status Status) *Book {
	return &Book{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Status: status,
	}
}

// Issue marks the book as issued.
func (b *Book) Issue() error {
	if b.Status == StatusIssued {
		return errors.NewStateError(resource, b.ISBN, "issue", string(StatusIssued))
	}
	b.Status = StatusIssued
	return nil
}

// Return marks the book as available again.
func (b *Book) Return() error {
	if b.Status == StatusAvailable {
		return errors.NewStateError(resource, b.ISBN, "return", string(StatusAvailable))
	}
	b.Status = StatusAvailable
	return nil
}

// IsAvailable reports whether the book can be issued.
func (b *Book) IsAvailable() bool {
	return b.Status == StatusAvailable
}

// String renders the book on a single line:
// "<title> | <author> | ISBN: <isbn> | Status: <status>".
func (b *Book) String() string {
	return fmt.Sprintf("%s | %s | ISBN: %s | Status: %s", b.Title, b.Author, b.ISBN, b.Status)
}
