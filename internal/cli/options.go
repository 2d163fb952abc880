package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/conncheck"
	"github.com/aretw0/conncheck/internal/config"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/aretw0/conncheck/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the persistent flags shared by all commands.
type Options struct {
	ConfigFile  string
	APIURL      string
	Debug       bool
	JSON        bool
	Basic       bool
	NoValidate  bool
	MetricsAddr string
}

// LoadConfig resolves the configuration, with flags taking precedence.
func LoadConfig(opts Options) (*config.Config, error) {
	overrides := map[string]any{}
	if opts.APIURL != "" {
		overrides["api_url"] = opts.APIURL
	}
	if opts.Debug {
		overrides["debug"] = true
	}
	if opts.NoValidate {
		overrides["validate"] = false
	}
	return config.Load(config.Options{
		File:      opts.ConfigFile,
		Overrides: overrides,
	})
}

// createApp wires the demo app with standard CLI conventions.
func createApp(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger, extra ...domain.LifecycleHooks) (*app.App, error) {
	hooks := append([]domain.LifecycleHooks{}, extra...)
	if cfg.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if opts.MetricsAddr != "" {
		metricsHooks, err := serveMetrics(ctx, opts.MetricsAddr, logger)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, metricsHooks)
	}

	mode := app.ModeFull
	if opts.Basic {
		mode = app.ModeBasic
	}

	a, err := conncheck.New(ctx, cfg.APIURL,
		conncheck.WithLogger(logger),
		conncheck.WithLifecycleHooks(observability.ChainHooks(hooks...)),
		conncheck.WithResponseValidation(cfg.Validate),
		conncheck.WithMode(mode),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing conncheck: %w", err)
	}
	return a, nil
}

// serveMetrics exposes the action metrics on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) (domain.LifecycleHooks, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m, err := observability.NewMetrics(reg)
	if err != nil {
		return domain.LifecycleHooks{}, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logger.Info("Metrics server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return m.Hooks(), nil
}
