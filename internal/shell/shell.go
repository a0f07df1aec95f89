// Package shell implements the interactive numbered menu used when stacks is
// started without a subcommand.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/pkg/books"
	"github.com/agentstation/stacks/pkg/inventory"
	"github.com/agentstation/stacks/pkg/logging"
)

// Menu choices.
const (
	ChoiceAdd    = "1"
	ChoiceIssue  = "2"
	ChoiceReturn = "3"
	ChoiceList   = "4"
	ChoiceSearch = "5"
	ChoiceExit   = "6"
)

// Messages printed by the shell.
const (
	msgAdded        = "Book Added Successfully!"
	msgAddFailed    = "Cannot add. Book could not be saved."
	msgIssued       = "Book Issued Successfully!"
	msgIssueFailed  = "Cannot issue. Book not available or invalid ISBN."
	msgReturned     = "Book Returned Successfully!"
	msgReturnFailed = "Cannot return. Book already available or invalid ISBN."
	msgEmpty        = "No books available in the inventory."
	msgListHeader   = "----- BOOK INVENTORY -----"
	msgFound        = "Book Found:"
	msgMatches      = "Matching Books:"
	msgNoMatch      = "No book found."
	msgExit         = "Exiting Library Manager..."
	msgInvalid      = "Invalid Choice! Try Again."
)

const menu = `
========== LIBRARY INVENTORY MANAGER ==========
1. Add Book
2. Issue Book
3. Return Book
4. View All Books
5. Search Book
6. Exit
`

// Catalog is the set of inventory operations the shell drives.
// *inventory.Inventory satisfies it.
type Catalog interface {
	AddAndSave(book *books.Book) error
	Issue(isbn string) error
	Return(isbn string) error
	List() inventory.Listing
	FindByISBN(isbn string) (*books.Book, error)
	FindByTitle(substr string) []*books.Book
}

// Shell reads menu choices from an input stream and writes results to an
// output stream. It is not safe for concurrent use.
//
// Input is read on a separate goroutine so a blocked read never delays
// cancellation. That goroutine may stay blocked on the stream after Run
// returns; it ends when the stream is closed or yields another line.
// Run is meant to be called once per Shell.
type Shell struct {
	catalog Catalog
	in      *bufio.Reader
	out     io.Writer
	logger  *zerolog.Logger
	lines   <-chan line
}

// line is one read from the input stream.
type line struct {
	text string
	err  error
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for failures the user only sees as a
// generic message.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Shell over catalog.
func New(catalog Catalog, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		catalog: catalog,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
// End of input is treated like the Exit choice. Cancellation interrupts a
// pending prompt and is returned as ctx.Err().
func (s *Shell) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make(chan line)
	done := make(chan struct{})
	defer close(done)
	s.lines = lines
	go s.readLines(lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return s.stop(err)
		}

		s.print(menu)
		choice, err := s.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return s.stop(err)
		}

		switch strings.TrimSpace(choice) {
		case ChoiceAdd:
			err = s.add(ctx)
		case ChoiceIssue:
			err = s.issue(ctx)
		case ChoiceReturn:
			err = s.giveBack(ctx)
		case ChoiceList:
			s.list()
		case ChoiceSearch:
			err = s.search(ctx)
		case ChoiceExit:
			s.println(msgExit)
			return nil
		default:
			s.println(msgInvalid)
		}

		if err != nil {
			return s.stop(err)
		}
	}
}

func (s *Shell) add(ctx context.Context) error {
	title, err := s.prompt(ctx, "Enter Book Title: ")
	if err != nil {
		return err
	}
	author, err := s.prompt(ctx, "Enter Author: ")
	if err != nil {
		return err
	}
	isbn, err := s.prompt(ctx, "Enter ISBN: ")
	if err != nil {
		return err
	}

	if err := s.catalog.AddAndSave(books.New(title, author, isbn)); err != nil {
		s.println(msgAddFailed)
		return nil
	}
	s.println(msgAdded)
	return nil
}

func (s *Shell) issue(ctx context.Context) error {
	isbn, err := s.prompt(ctx, "Enter ISBN to issue: ")
	if err != nil {
		return err
	}

	if err := s.catalog.Issue(isbn); err != nil {
		s.logger.Debug().Err(err).Str("isbn", isbn).Msg("Issue rejected")
		s.println(msgIssueFailed)
		return nil
	}
	s.println(msgIssued)
	return nil
}

func (s *Shell) giveBack(ctx context.Context) error {
	isbn, err := s.prompt(ctx, "Enter ISBN to return: ")
	if err != nil {
		return err
	}

	if err := s.catalog.Return(isbn); err != nil {
		s.logger.Debug().Err(err).Str("isbn", isbn).Msg("Return rejected")
		s.println(msgReturnFailed)
		return nil
	}
	s.println(msgReturned)
	return nil
}

func (s *Shell) list() {
	listing := s.catalog.List()
	if listing.Empty() {
		s.println(msgEmpty)
		return
	}

	s.println("\n" + msgListHeader)
	for _, b := range listing.Books {
		s.println(b.String())
	}
}

func (s *Shell) search(ctx context.Context) error {
	query, err := s.prompt(ctx, "Enter Title/ISBN to search: ")
	if err != nil {
		return err
	}

	if b, err := s.catalog.FindByISBN(query); err == nil {
		s.println(msgFound)
		s.println(b.String())
		return nil
	}

	matches := s.catalog.FindByTitle(query)
	if len(matches) == 0 {
		s.println(msgNoMatch)
		return nil
	}

	s.println(msgMatches)
	for _, b := range matches {
		s.println(b.String())
	}
	return nil
}

// stop ends the session. End of input exits cleanly; cancellation prints the
// exit message and reports the context error.
func (s *Shell) stop(err error) error {
	switch {
	case err == io.EOF:
		s.println("")
		s.println(msgExit)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.println("")
		s.println(msgExit)
	}
	return err
}

// prompt writes label and waits for one line, without its line terminator,
// or for ctx to be cancelled.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	s.print(label)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-s.lines:
		return l.text, l.err
	}
}

// readLines feeds input lines to prompt until the stream fails or Run
// returns. A final line without a terminator is delivered before the stream
// error, which is then repeated for every later prompt.
func (s *Shell) readLines(lines chan<- line, done <-chan struct{}) {
	var err error
	for err == nil {
		var text string
		text, err = s.in.ReadString('\n')
		if text == "" && err != nil {
			break
		}
		select {
		case lines <- line{text: strings.TrimRight(text, "\r\n")}:
		case <-done:
			return
		}
	}
	for {
		select {
		case lines <- line{err: err}:
		case <-done:
			return
		}
	}
}

func (s *Shell) print(text string) {
	_, _ = fmt.Fprint(s.out, text)
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
