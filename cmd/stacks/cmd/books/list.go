package books

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/alerts"
	"github.com/agentstation/stacks/internal/cmd/output"
	"github.com/agentstation/stacks/pkg/books"
)

// NewListCommand creates the list command.
func NewListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		GroupID: GroupID,
		Short:   "List every book in the inventory",
		Aliases: []string{"ls"},
		Example: `  stacks list             # table on a terminal
  stacks list -o json     # storage records as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := loadInventory(app)
			if err != nil {
				return err
			}

			listing := inv.List()
			return renderBooks(cmd, app, listing.Books, alerts.NewWarning("No books available in the inventory."))
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find books by ISBN or title",
		Long: `Search looks the query up as an exact ISBN first. If no book has that
ISBN, it lists every book whose title contains the query, ignoring case.`,
		GroupID: GroupID,
		Example: `  stacks search 9780441013593
  stacks search dune`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadInventory(app)
			if err != nil {
				return err
			}

			results := inv.Search(args[0])
			app.Logger().Debug().
				Str("query", args[0]).
				Int("results", len(results)).
				Msg("Search completed")

			return renderBooks(cmd, app, results, alerts.NewInfo("No book found."))
		},
	}
}

// renderBooks prints books in the configured format. An empty table result
// prints the empty alert instead; structured formats print an empty list.
func renderBooks(cmd *cobra.Command, app AppContext, list []*books.Book, empty *alerts.Alert) error {
	format := outputFormat(app)
	if len(list) == 0 && format == output.FormatTable {
		return writeAlert(cmd, app, empty)
	}
	return output.FormatBooks(cmd.OutOrStdout(), list, format)
}
