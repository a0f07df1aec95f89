// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/stacks/internal/cmd/output"
)

// AppContext defines what the version command needs from the app.
type AppContext interface {
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
	OutputFormat() string
}

// Info is the version information rendered by structured formats.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewCommand creates the version command.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			w := cmd.OutOrStdout()
			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(w, info)
			}

			_, err := fmt.Fprintf(w, "stacks version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s\n",
				info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform)
			return err
		},
	}
}
