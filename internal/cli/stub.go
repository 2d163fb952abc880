package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/conncheck/internal/config"
	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/adapters/memory"
	"github.com/aretw0/conncheck/pkg/adapters/redis"
	"github.com/aretw0/conncheck/pkg/adapters/stub"
	"github.com/aretw0/conncheck/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// StubOptions overrides the stub section of the configuration.
type StubOptions struct {
	Addr      string
	RedisAddr string
}

// ServeStub runs the reference backend until SIGINT or SIGTERM.
func ServeStub(opts Options, stubOpts StubOptions) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	if stubOpts.Addr != "" {
		cfg.Stub.Addr = stubOpts.Addr
	}
	if stubOpts.RedisAddr != "" {
		cfg.Stub.RedisAddr = stubOpts.RedisAddr
	}

	logger := logging.NewJSON(logging.Level(cfg.Debug))

	sigCtx := NewShutdownContext(context.Background())
	defer sigCtx.Cancel()

	store, closeStore, err := createTodoStore(sigCtx, cfg.Stub, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	handlerOpts := []stub.Option{
		stub.WithLogger(logger),
		stub.WithRateLimit(cfg.Stub.RateLimit, cfg.Stub.Burst),
	}
	if cfg.Stub.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handlerOpts = append(handlerOpts, stub.WithRegistry(reg))
	}

	return stub.ListenAndServe(sigCtx, cfg.Stub.Addr, stub.NewHandler(store, handlerOpts...), logger)
}

// createTodoStore picks Redis when an address is configured, memory otherwise.
func createTodoStore(ctx context.Context, cfg config.StubConfig, logger *slog.Logger) (ports.TodoStore, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory todo store")
		return memory.NewStore(), func() {}, nil
	}

	store := redis.New(cfg.RedisAddr, "", 0, redis.WithPrefix(cfg.RedisPrefix))
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Using Redis todo store", "address", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
	return store, func() { _ = store.Close() }, nil
}
