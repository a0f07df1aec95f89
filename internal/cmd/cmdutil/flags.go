// Package cmdutil provides shared flags and configuration utilities for stacks commands.
package cmdutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GlobalFlags holds common flags across all commands.
type GlobalFlags struct {
	Config   string
	DataDir  string
	Format   string
	LogLevel string
	LogFile  string
	Quiet    bool
	Verbose  bool
	NoColor  bool
}

// AddGlobalFlags adds common flags to the root command.
func AddGlobalFlags(cmd *cobra.Command) *GlobalFlags {
	flags := &GlobalFlags{}

	cmd.PersistentFlags().StringVar(&flags.Config, "config", "",
		"config file (default is $HOME/.stacks.yaml)")
	cmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "",
		"directory holding library_books.json (default is the executable's directory)")
	cmd.PersistentFlags().StringVarP(&flags.Format, "format", "o", "",
		"output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "",
		"log level: trace, debug, info, warn, error (overrides -v/-q)")
	cmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "",
		"log file path, or stderr (default is library.log beside the storage file)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"minimal output (shortcut for --log-level=warn)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"verbose output (shortcut for --log-level=debug)")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"disable colored output")

	return flags
}

// BookFlags holds the fields of a new book.
type BookFlags struct {
	Title  string
	Author string
	ISBN   string
}

// AddBookFlags adds book field flags to a command.
func AddBookFlags(cmd *cobra.Command) *BookFlags {
	flags := &BookFlags{}

	cmd.Flags().StringVar(&flags.Title, "title", "", "book title")
	cmd.Flags().StringVar(&flags.Author, "author", "", "book author")
	cmd.Flags().StringVar(&flags.ISBN, "isbn", "", "book ISBN")

	return flags
}

// ChangedFlags returns the flags explicitly set on the command line.
func ChangedFlags(fs *pflag.FlagSet) map[string]string {
	changed := make(map[string]string)
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			changed[flag.Name] = flag.Value.String()
		}
	})
	return changed
}
