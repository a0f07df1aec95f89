package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/cmd/stacks/cmd/books"
	"github.com/agentstation/stacks/cmd/stacks/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	for _, cmd := range books.NewCommands(a) {
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(version.NewCommand(a))
}
