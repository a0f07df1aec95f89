package books

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/alerts"
	"github.com/agentstation/stacks/pkg/logging"
)

// NewIssueCommand creates the issue command.
func NewIssueCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "issue <isbn>",
		GroupID: GroupID,
		Short:   "Mark a book as issued",
		Long: `Issue marks the book with the given ISBN as issued and saves the change.

It fails if no book has that ISBN or the book is already issued.`,
		Example: `  stacks issue 9780441013593`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return circulate(cmd, app, "issue", args[0], "Book Issued Successfully!")
		},
	}
}

// NewReturnCommand creates the return command.
func NewReturnCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "return <isbn>",
		GroupID: GroupID,
		Short:   "Mark a book as available again",
		Long: `Return marks the book with the given ISBN as available and saves the change.

It fails if no book has that ISBN or the book is already available.`,
		Example: `  stacks return 9780441013593`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return circulate(cmd, app, "return", args[0], "Book Returned Successfully!")
		},
	}
}

// circulate applies an issue or return and reports the outcome.
func circulate(cmd *cobra.Command, app AppContext, operation, isbn, success string) error {
	inv, err := loadInventory(app)
	if err != nil {
		return err
	}

	apply := inv.Issue
	if operation == "return" {
		apply = inv.Return
	}

	ctx := logging.WithOperation(logging.WithISBN(cmd.Context(), isbn), operation)
	if err := apply(isbn); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("Circulation change rejected")
		return err
	}

	return writeAlert(cmd, app, alerts.NewSuccess(success))
}
