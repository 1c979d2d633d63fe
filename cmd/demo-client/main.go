// Command demo-client calls the demo server routes through the typed
// OpenAPI client and prints what each call resolved to.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Denwa799/openapi-example/demoapi"
	"github.com/Denwa799/openapi-example/httpclient"
	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/observability"
	"github.com/Denwa799/openapi-example/openapi"
	"github.com/Denwa799/openapi-example/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configFile  string
	baseURL     string
	validStatus string
	calls       int
}

func newRootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Call the demo routes and print each outcome",
		Version:      version.Get().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return fetchAll(ctx, cmd.OutOrStdout(), cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "path to config.yml")
	pf.StringVar(&f.baseURL, "base-url", demoapi.DefaultBaseURL, "demo server base URL")
	pf.StringVar(&f.validStatus, "valid-status", string(openapi.ValidStatusAll), "status policy: all or native")
	root.Flags().IntVarP(&f.calls, "calls", "n", 1, "number of rounds over the demo routes")

	uri := &cobra.Command{
		Use:   "uri",
		Short: "Print the resolved URI of every demo route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return printURIs(cmd.OutOrStdout(), cfg)
		},
	}
	root.AddCommand(uri)
	return root
}

// load reads the config file and applies the flags the user set.
func (f *flags) load(cmd *cobra.Command) (*Config, error) {
	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.Client.BaseURL = f.baseURL
	}
	if cmd.Flags().Changed("valid-status") {
		cfg.ValidStatus = f.validStatus
	}
	if cmd.Flags().Changed("calls") {
		cfg.Calls = f.calls
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *Config, metrics *observability.Metrics) (*openapi.Client, *httpclient.Adapter, error) {
	adapter, err := httpclient.New(cfg.Client, httpclient.WithLogger(logger.WithComponent("httpclient")))
	if err != nil {
		return nil, nil, err
	}
	policy, err := openapi.ParseValidStatus(cfg.ValidStatus)
	if err != nil {
		return nil, nil, err
	}
	opts := []openapi.Option{
		openapi.WithSchema(demoapi.Schema()),
		openapi.WithDefaultValidStatus(policy),
		openapi.WithServiceName(cfg.Name),
		openapi.WithLogger(logger.WithComponent("openapi")),
	}
	if metrics != nil {
		opts = append(opts, openapi.WithMetrics(metrics))
	}
	client, err := openapi.New(adapter, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, adapter, nil
}

func fetchAll(ctx context.Context, w io.Writer, cfg *Config) error {
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

	metrics, err := observability.NewMetrics(observability.Meter(serviceName), "client")
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	client, adapter, err := newClient(cfg, metrics)
	if err != nil {
		return err
	}
	defer func() { _ = adapter.Close(ctx) }()

	fetcher := demoapi.NewFetcher(client)
	tally := make(map[string]int)
	for round := range cfg.Calls {
		for _, path := range demoapi.Paths {
			out, err := fetcher.Fetch(ctx, path)
			if err != nil {
				terr, ok := httpclient.AsError(err)
				if !ok {
					return err
				}
				// Under the native policy rejected statuses arrive as errors.
				out = demoapi.Outcome{
					Path:   path,
					Status: openapi.Status{Code: terr.StatusCode, Transport: terr.Code},
					Text:   terr.Message,
				}
			}
			tally[out.Status.String()]++
			fmt.Fprintf(w, "%s %s -> %s: %s\n", http.MethodGet, out.Path, out.Status, out.Text)
		}
		log.Debug("Round finished", logger.Fields("round", round+1))
	}

	if cfg.Calls > 1 {
		writeTally(w, tally)
	}
	return nil
}

func writeTally(w io.Writer, tally map[string]int) {
	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(w, "statuses:")
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d\n", k, tally[k])
	}
}

func printURIs(w io.Writer, cfg *Config) error {
	client, _, err := newClient(cfg, nil)
	if err != nil {
		return err
	}
	for _, path := range demoapi.Paths {
		uri, err := client.ResolveURI(http.MethodGet, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, uri)
	}
	return nil
}
