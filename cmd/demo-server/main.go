// Command demo-server serves the /text, /json and /xml demo routes, each
// answering 200, 400 or 500 according to the configured scenario.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Denwa799/openapi-example/demoapi"
	"github.com/Denwa799/openapi-example/demoserver"
	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/observability"
	"github.com/Denwa799/openapi-example/server"
	"github.com/Denwa799/openapi-example/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Demo HTTP server with randomly failing routes",
		Version:      version.Get().String(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config.yml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveHTTP(ctx, cfg)
		},
	}

	var format string
	spec := &cobra.Command{
		Use:   "spec",
		Short: "Print the OpenAPI document of the demo routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeDocument(cmd.OutOrStdout(), format)
		},
	}
	spec.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")

	root.AddCommand(serve, spec)
	return root
}

func serveHTTP(ctx context.Context, cfg *Config) error {
	logger.Init(&cfg.Logging)
	log := logger.WithComponent("main")

	shutdown, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Observability shutdown failed", logger.ErrorFields("observability.shutdown", err))
		}
	}()

	metrics, err := observability.NewMetrics(observability.Meter(serviceName), "demo")
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	scenario, err := demoserver.NewScenario(cfg.Demo)
	if err != nil {
		return err
	}
	app := demoserver.New(scenario,
		demoserver.WithLogger(logger.WithComponent("demoserver")),
		demoserver.WithMetrics(metrics),
	)

	srv := server.New(cfg.Server, logger.WithComponent("server"))
	srv.ApplyDefaults(cfg.Name, app)
	app.Register(srv.GinEngine())
	srv.LogRoutes()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Demo server ready", map[string]interface{}{
		"addr":    srv.Addr(),
		"mode":    cfg.Demo.Mode,
		"version": version.Get().Short(),
	})

	<-ctx.Done()
	return srv.Stop(context.WithoutCancel(ctx))
}

func writeDocument(w io.Writer, format string) error {
	schema := demoapi.Schema()
	switch format {
	case "json":
		return schema.WriteJSON(w)
	case "yaml", "yml":
		return schema.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
