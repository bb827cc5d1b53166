package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge/internal/commands"
)

// Stamped via -ldflags at release time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oasforge",
		Short: "Generate OpenAPI specs from annotated service declarations",
		Long: `Static analysis-based OpenAPI 3.0.1 specification generator.

oasforge reads the declaration graph emitted by the source parser and
synthesizes a complete specification from controller classes, route
annotations, type definitions and validation constraints.`,
		Version: version,
	}

	rootCmd.AddCommand(
		commands.NewGenerateCommand(),
		commands.NewServeCommand(),
		commands.NewDoctorCommand(),
		commands.NewVersionCommand(commands.BuildInfo{Version: version, Commit: commit, Date: date}),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
