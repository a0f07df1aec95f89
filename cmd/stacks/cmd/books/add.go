package books

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/alerts"
	"github.com/agentstation/stacks/internal/cmd/cmdutil"
	"github.com/agentstation/stacks/pkg/books"
)

// NewAddCommand creates the add command.
func NewAddCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.BookFlags

	cmd := &cobra.Command{
		Use:     "add",
		GroupID: GroupID,
		Short:   "Add a book to the inventory",
		Long: `Add appends a new, available book to the inventory and saves it.

Fields are stored as given. ISBNs are not checked for uniqueness; lookups
use the first book added with a given ISBN.`,
		Example: `  stacks add --title "Dune" --author "Frank Herbert" --isbn 9780441013593`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := loadInventory(app)
			if err != nil {
				return err
			}

			book := books.New(flags.Title, flags.Author, flags.ISBN)
			if err := inv.AddAndSave(book); err != nil {
				return err
			}

			return writeAlert(cmd, app, alerts.NewSuccess("Book Added Successfully!").
				WithDetails(book.String()))
		},
	}

	flags = cmdutil.AddBookFlags(cmd)

	return cmd
}
