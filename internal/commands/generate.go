package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/logger"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// NewGenerateCommand creates the one-shot generation command.
func NewGenerateCommand() *cobra.Command {
	var (
		inputPath  string
		configPath string
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an OpenAPI specification from a declaration graph",
		Long: `Generate reads the declaration graph emitted by the source parser,
extracts service and route metadata and writes a complete OpenAPI 3.0
specification to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(inputPath, configPath, outputPath, format)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "declarations.json", "path to the declaration graph JSON file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "openapi.json", "path to write the specification to")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json or yaml)")

	return cmd
}

func runGenerate(inputPath, configPath, outputPath, format string) error {
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("unsupported output format %q (expected json or yaml)", format)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	doc, err := synthesize(cfg, log, inputPath)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case formatYAML:
		out, err = doc.YAML()
	default:
		out, err = doc.JSON()
	}
	if err != nil {
		return fmt.Errorf("failed to encode specification: %w", err)
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write specification: %w", err)
	}

	log.Info().
		Str("output", outputPath).
		Str("format", format).
		Int("paths", len(doc.Paths)).
		Msg("Specification written")
	return nil
}
