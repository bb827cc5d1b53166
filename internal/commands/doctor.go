package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/decl"
	"github.com/oasforge/oasforge/logger"
)

// DoctorOptions holds options for the doctor command
type DoctorOptions struct {
	InputPath  string
	ConfigPath string
	Verbose    bool
}

// NewDoctorCommand creates the doctor command
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and declaration graph health",
		Long: `Performs health checks on the configuration file and the declaration
graph to ensure the generator can run successfully.

Checks include:
- Configuration loads and validates
- Declaration graph parses
- Services and service groups are discoverable`,
		Example: `  # Check the default input
  oasforge doctor

  # Check a specific input and configuration
  oasforge doctor -i declarations.json -c oasforge.yaml -v`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "declarations.json", "path to the declaration graph JSON file")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the configuration file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	return cmd
}

func runDoctor(opts *DoctorOptions) error {
	fmt.Println("Running oasforge health check...")
	fmt.Println()

	var hasErrors bool

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Printf("FAIL configuration: %v\n", err)
		hasErrors = true
	} else {
		fmt.Printf("OK   configuration (%s v%s)\n", cfg.Title, cfg.Version)
	}

	if err := checkInput(opts, cfg); err != nil {
		fmt.Printf("FAIL declaration graph: %v\n", err)
		hasErrors = true
	}

	fmt.Println()
	if hasErrors {
		fmt.Println("Health check failed - please fix the issues above")
		return fmt.Errorf("health check failed")
	}

	fmt.Println("All checks passed - ready to generate specifications")
	return nil
}

func checkInput(opts *DoctorOptions, cfg *config.Config) error {
	if _, err := os.Stat(opts.InputPath); err != nil {
		return fmt.Errorf("cannot access %s: %w", opts.InputPath, err)
	}

	units, err := loadUnits(opts.InputPath)
	if err != nil {
		return err
	}

	reg := decl.NewRegistry(units)
	fmt.Printf("OK   declaration graph (%d source units)\n", len(units))

	if cfg == nil {
		return nil
	}

	services := analyze(cfg, logger.Nop(), units)
	fmt.Printf("OK   %d services, %d groups, %d schema classes discovered\n",
		len(services), len(reg.Groups()), countPlainClasses(reg, units))

	if len(services) == 0 {
		fmt.Println("WARN no controller classes found in the declaration graph")
	}

	if opts.Verbose {
		for i := range services {
			svc := &services[i]
			fmt.Printf("     %s: %d routes (category %q)\n", svc.Name, len(svc.Routes), svc.Category)
		}
	}
	return nil
}

// countPlainClasses counts the declarations usable only as schema shapes.
func countPlainClasses(reg *decl.Registry, units []decl.SourceUnit) int {
	var plain int
	for ui := range units {
		for ci := range units[ui].Classes {
			if reg.Kind(units[ui].Classes[ci].Name) == decl.KindPlain {
				plain++
			}
		}
	}
	return plain
}
