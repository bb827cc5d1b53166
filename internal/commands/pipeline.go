// Package commands implements the oasforge CLI subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oasforge/oasforge/analyzer"
	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/decl"
	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/logger"
	"github.com/oasforge/oasforge/models"
)

// loadUnits reads the declaration graph produced by the source parser.
func loadUnits(path string) ([]decl.SourceUnit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}

	var units []decl.SourceUnit
	if err := json.Unmarshal(raw, &units); err != nil {
		return nil, fmt.Errorf("failed to decode declarations: %w", err)
	}
	return units, nil
}

// analyze runs the extraction half of the pipeline.
func analyze(cfg *config.Config, log logger.Logger, units []decl.SourceUnit) []models.ServiceDescriptor {
	reg := decl.NewRegistry(units)
	a := analyzer.New(reg, log)
	a.SetCategoryMapping(cfg.CategoryMapping)
	return a.Analyze()
}

// synthesize runs one full extraction + synthesis pass over the input file.
func synthesize(cfg *config.Config, log logger.Logger, inputPath string) (*generator.Document, error) {
	units, err := loadUnits(inputPath)
	if err != nil {
		return nil, err
	}
	services := analyze(cfg, log, units)
	return generator.New(cfg, log).Synthesize(services)
}
