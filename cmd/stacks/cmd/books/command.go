// Package books provides the non-interactive book commands: add, issue,
// return, list and search.
package books

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/alerts"
	"github.com/agentstation/stacks/internal/cmd/output"
	"github.com/agentstation/stacks/pkg/inventory"
)

// GroupID is the command group the book commands are listed under.
const GroupID = "books"

// AppContext defines the interface that book commands need from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Inventory() (*inventory.Inventory, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	NoColor() bool
}

// NewCommands creates every book command with app dependencies.
func NewCommands(app AppContext) []*cobra.Command {
	return []*cobra.Command{
		NewAddCommand(app),
		NewIssueCommand(app),
		NewReturnCommand(app),
		NewListCommand(app),
		NewSearchCommand(app),
	}
}

// loadInventory fetches the inventory from the app.
func loadInventory(app AppContext) (*inventory.Inventory, error) {
	inv, err := app.Inventory()
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory not available")
	}
	return inv, nil
}

// outputFormat resolves the format to render with.
func outputFormat(app AppContext) output.Format {
	return output.DetectFormat(app.OutputFormat())
}

// writeAlert prints a status line in the configured format.
func writeAlert(cmd *cobra.Command, app AppContext, alert *alerts.Alert) error {
	w := alerts.NewFormatWriter(cmd.OutOrStdout(), outputFormat(app))
	if app.NoColor() {
		w = w.WithConfig(alerts.WriterConfig{ShowDetails: true})
	}
	return w.WriteAlert(alert)
}
