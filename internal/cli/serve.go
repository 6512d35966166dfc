package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-extractor/internal/api"
	"github.com/insightdelivered/statement-extractor/internal/logger"
	"github.com/insightdelivered/statement-extractor/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx, rulesFile)
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with revenue keywords and category rules")
	return cmd
}

func (a *app) runServe(ctx context.Context, rulesFile string) error {
	// the server logs JSON lines
	level := a.log.GetLevel()
	a.log = logger.NewWithWriter(os.Stdout).Level(level)

	p, err := a.buildPipeline(rulesFile)
	if err != nil {
		return err
	}

	opts := api.Options{
		MaxUploadBytes:     a.cfg.Server.MaxUploadBytes,
		RateLimitPerSecond: a.cfg.Server.RateLimitPerSecond,
		RateLimitBurst:     a.cfg.Server.RateLimitBurst,
	}
	var m *metrics.Metrics
	if a.cfg.Observability.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if m, err = metrics.New(reg); err != nil {
			return err
		}
		opts.Registry = reg
	}

	app := api.NewApp(api.NewHandler(p, m, a.log, a.version), opts)
	return api.Serve(ctx, app, a.cfg.Server.Addr(), a.log)
}
