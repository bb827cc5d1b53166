package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo carries the build-time identification stamped into the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the one-line version banner.
func (b BuildInfo) String() string {
	version := b.Version
	if version == "" {
		version = "dev"
	}

	line := "oasforge " + version
	if b.Commit != "" {
		line += " (" + b.Commit
		if b.Date != "" {
			line += ", " + b.Date
		}
		line += ")"
	}
	return fmt.Sprintf("%s %s %s/%s", line, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
}
