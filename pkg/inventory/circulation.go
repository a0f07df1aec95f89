package inventory

import (
	"github.com/agentstation/stacks/pkg/books"
	"github.com/agentstation/stacks/pkg/errors"
)

// AddAndSave appends a book and persists the inventory. If the file cannot be
// written the book is removed again and the error returned. The addition is
// logged only once it is on disk.
func (inv *Inventory) AddAndSave(book *books.Book) error {
	wasDirty := inv.dirty
	inv.books = append(inv.books, book)
	inv.dirty = true

	if err := inv.Flush(); err != nil {
		inv.books = inv.books[:len(inv.books)-1]
		inv.dirty = wasDirty
		inv.logger.Error().
			Err(err).
			Str("isbn", book.ISBN).
			Msg("Error saving books, add rolled back")
		return errors.WrapResource("add", "book", book.ISBN, err)
	}

	inv.logAdded(book)
	return nil
}

// Issue marks the book with the given isbn as issued and persists the change.
// It returns a not-found error for an unknown isbn, a conflict error if the
// book is already issued, and a persistence error (after reverting the book)
// if the file cannot be written.
func (inv *Inventory) Issue(isbn string) error {
	return inv.transition(isbn, "issue", "Book issued", (*books.Book).Issue)
}

// Return marks the book with the given isbn as available and persists the
// change, with the same error cases as Issue.
func (inv *Inventory) Return(isbn string) error {
	return inv.transition(isbn, "return", "Book returned", (*books.Book).Return)
}

func (inv *Inventory) transition(isbn, operation, message string, apply func(*books.Book) error) error {
	book, err := inv.FindByISBN(isbn)
	if err != nil {
		return err
	}

	previous := book.Status
	if err := apply(book); err != nil {
		return err
	}

	if err := inv.Flush(); err != nil {
		book.Status = previous
		inv.logger.Error().
			Err(err).
			Str("isbn", isbn).
			Str("operation", operation).
			Msg("Error saving books, change rolled back")
		return errors.WrapResource(operation, "book", isbn, err)
	}

	inv.logger.Info().
		Str("isbn", isbn).
		Str("title", book.Title).
		Str("status", book.Status.String()).
		Msg(message)
	return nil
}
