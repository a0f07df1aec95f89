package app

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/alerts"
	"github.com/agentstation/stacks/internal/cmd/cmdutil"
	"github.com/agentstation/stacks/internal/cmd/output"
	"github.com/agentstation/stacks/internal/shell"
	"github.com/agentstation/stacks/pkg/errors"
	"github.com/agentstation/stacks/pkg/logging"
)

// Execute runs the stacks CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stacks",
		Short:   "Library inventory manager",
		Version: a.version,
		Long: `Stacks keeps track of a small collection of books and whether each one
is available or issued. The inventory is stored as library_books.json next
to the stacks executable unless a data directory is configured.

Run without a command to start the interactive menu.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE:              a.runShell,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "books",
		Title: "Book Commands:",
	})

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)

	// Global flags only override the loaded configuration when set
	a.flags = cmdutil.AddGlobalFlags(rootCmd)

	rootCmd.SetVersionTemplate("stacks {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	changed := cmdutil.ChangedFlags(cmd.Flags())

	// An explicit config file replaces the configuration loaded at startup
	if _, ok := changed["config"]; ok {
		config, err := LoadConfigFile(a.flags.Config)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags, changed)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return errors.NewConfigError("format", err.Error(), err)
	}
	a.config.Format = string(format)

	if err := a.config.Validate(); err != nil {
		return err
	}

	// Reinitialize logger with updated config
	if !a.loggerInjected {
		a.resetLogger()
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	a.logger.Debug().
		Str("command", cmd.Name()).
		Interface("flags", changed).
		Msg("Command configured")

	return nil
}

// runShell starts the interactive menu.
func (a *App) runShell(cmd *cobra.Command, _ []string) error {
	inv, err := a.Inventory()
	if err != nil {
		return err
	}

	a.logger.Debug().Str("path", inv.Path()).Msg("Starting interactive shell")

	sh := shell.New(inv, cmd.InOrStdin(), cmd.OutOrStdout(), shell.WithLogger(a.logger))
	if err := sh.Run(cmd.Context()); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_ = WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

// WriteError prints err as an error alert, keeping the specific cause
// (not found, conflict, persistence failure) visible to the user.
func WriteError(w io.Writer, err error) error {
	return alerts.NewWriterTo(w).WriteAlert(alerts.NewError("Error").WithError(err))
}
