package books

import (
	"strings"

	"github.com/agentstation/stacks/pkg/errors"
)

// Status is the availability of a book.
type Status string

// Status values.
const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
)

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusIssued:
		return true
	default:
		return false
	}
}

// ParseStatus converts a stored status string to a Status.
// Surrounding whitespace is ignored; the match is exact otherwise.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	if !status.Valid() {
		return "", errors.NewValidationError("status", s, "must be one of available, issued")
	}
	return status, nil
}
