// Package inventory holds the in-memory book collection and keeps it mirrored
// in a JSON storage file.
//
// An Inventory is created once per process. Construction loads the storage
// file, creating it with an empty array if it does not exist. Lookups are
// linear scans in insertion order.
//
// Two styles of mutation are offered. Add followed by Save is the primitive
// pair: Add only touches memory and Save is best effort, logging rather than
// returning failures. AddAndSave, Issue and Return persist immediately and roll
// the in-memory change back if the file cannot be written, so memory and disk
// never diverge silently.
//
// An Inventory is not safe for concurrent use, and two processes sharing one
// storage file overwrite each other's changes.
package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/agentstation/stacks/pkg/books"
	"github.com/agentstation/stacks/pkg/constants"
	"github.com/agentstation/stacks/pkg/errors"
	"github.com/agentstation/stacks/pkg/logging"
)

// Inventory is the ordered collection of books plus its storage location.
type Inventory struct {
	books   []*books.Book
	path    string
	dirty   bool
	logger  *zerolog.Logger
	options *options
	fold    cases.Caser
}

// New creates an inventory and loads it from storage.
// It fails only if the storage location cannot be resolved; load problems
// are logged and recovered from as described on Load.
func New(opts ...Option) (*Inventory, error) {
	o := defaults().apply(opts...)

	path, err := resolvePath(o)
	if err != nil {
		return nil, errors.WrapResource("create", "inventory", "", err)
	}

	inv := &Inventory{
		path:    path,
		options: o,
		fold:    cases.Fold(),
	}
	inv.SetLogger(o.logger)
	inv.Load()

	return inv, nil
}

// resolvePath picks the storage file: an explicit path, a configured
// directory, or the directory of the running executable.
func resolvePath(o *options) (string, error) {
	if o.path != "" {
		return filepath.Abs(o.path)
	}

	dir := o.dir
	if dir == "" {
		exeDir, err := ExecutableDir()
		if err != nil {
			return "", err
		}
		dir = exeDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapIO("resolve", dir, err)
	}
	return filepath.Join(abs, constants.StorageFileName), nil
}

// ExecutableDir returns the directory containing the running program, with
// symlinks resolved, so storage does not depend on the working directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.WrapIO("resolve", "executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// SetLogger replaces the logger that receives book events and persistence
// failures. A nil logger selects the package default.
func (inv *Inventory) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		logger = logging.Default()
	}
	scoped := logger.With().Str("component", "inventory").Logger()
	inv.logger = &scoped
}

// Path returns the absolute storage file path.
func (inv *Inventory) Path() string {
	return inv.path
}

// Len returns the number of books.
func (inv *Inventory) Len() int {
	return len(inv.books)
}

// Dirty reports whether memory holds changes that have not been saved.
func (inv *Inventory) Dirty() bool {
	return inv.dirty
}

// Add appends a book. It does not persist; call Save or Flush afterwards,
// or use AddAndSave.
func (inv *Inventory) Add(book *books.Book) {
	inv.books = append(inv.books, book)
	inv.dirty = true
	inv.logAdded(book)
}

func (inv *Inventory) logAdded(book *books.Book) {
	inv.logger.Info().
		Str("title", book.Title).
		Str("isbn", book.ISBN).
		Msg("Book added")
}

// FindByTitle returns every book whose title contains substr, ignoring case,
// in insertion order. An empty substr matches every book. The result is empty,
// not nil, when nothing matches.
func (inv *Inventory) FindByTitle(substr string) []*books.Book {
	needle := inv.fold.String(substr)
	matches := make([]*books.Book, 0)
	for _, b := range inv.books {
		if strings.Contains(inv.fold.String(b.Title), needle) {
			matches = append(matches, b)
		}
	}
	return matches
}

// FindByISBN returns the first book with exactly the given isbn.
func (inv *Inventory) FindByISBN(isbn string) (*books.Book, error) {
	for _, b := range inv.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, errors.NewNotFoundError("book", isbn)
}

// Search looks up query as an exact isbn first and falls back to a title
// substring match.
func (inv *Inventory) Search(query string) []*books.Book {
	if b, err := inv.FindByISBN(query); err == nil {
		return []*books.Book{b}
	}
	return inv.FindByTitle(query)
}

// List returns every book in insertion order.
func (inv *Inventory) List() Listing {
	out := make([]*books.Book, len(inv.books))
	copy(out, inv.books)
	return Listing{Books: out}
}
