package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/docs"
	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the documentation server command.
func NewServeCommand() *cobra.Command {
	var (
		inputPath  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated specification and a documentation viewer",
		Long: `Serve runs an HTTP server exposing the generated OpenAPI specification
and an interactive documentation viewer. When watch mode is enabled a
SIGHUP triggers a coalesced rebuild from the declaration graph.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(inputPath, configPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "declarations.json", "path to the declaration graph JSON file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")

	return cmd
}

func runServe(inputPath, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	rebuilder := docs.NewRebuilder(func() (*generator.Document, error) {
		return synthesize(cfg, log, inputPath)
	}, log)

	if cfg.ScanOnStart {
		// A failing initial pass is not fatal: the server answers 503
		// until the first successful rebuild.
		if err := rebuilder.Rebuild(); err != nil {
			log.Error().Err(err).Msg("Initial synthesis failed")
		}
	}

	srv := docs.NewServer(cfg, log, rebuilder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.WatchMode {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		g.Go(func() error {
			defer signal.Stop(hup)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					log.Info().Msg("Reload signal received, triggering rebuild")
					rebuilder.Trigger()
				}
			}
		})
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("docs", cfg.DocsPath).
		Str("spec", cfg.SpecPath).
		Msg("Documentation server starting")

	return g.Wait()
}
