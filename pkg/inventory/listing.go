package inventory

import "github.com/agentstation/stacks/pkg/books"

// Listing is a snapshot of the inventory in display order.
type Listing struct {
	Books []*books.Book
}

// Empty reports whether the inventory held no books. Callers show a distinct
// "inventory is empty" message in that case rather than an empty table.
func (l Listing) Empty() bool {
	return len(l.Books) == 0
}

// Len returns the number of books in the listing.
func (l Listing) Len() int {
	return len(l.Books)
}

// Records returns the flat representation of every book.
func (l Listing) Records() []books.Record {
	return books.Records(l.Books)
}
