package books

import "github.com/agentstation/stacks/pkg/errors"

// Record is the flat serialization shape of a Book. It is the element type of
// the storage file's JSON array and of json/yaml command output.
type Record struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	ISBN   string `json:"isbn" yaml:"isbn"`
	Status string `json:"status" yaml:"status"`
}

// Record returns the flat representation of the book.
func (b *Book) Record() Record {
	return Record{
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
		Status: b.Status.String(),
	}
}

// FromRecord restores a book from its flat representation.
// A record whose status is not a known value is rejected.
func FromRecord(r Record) (*Book, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, errors.WrapResource("restore", resource, r.ISBN, err)
	}
	return NewWithStatus(r.Title, r.Author, r.ISBN, status), nil
}

// Records converts books to their flat representations, preserving order.
func Records(list []*Book) []Record {
	records := make([]Record, 0, len(list))
	for _, b := range list {
		records = append(records, b.Record())
	}
	return records
}
