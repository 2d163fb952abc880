package conncheck

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/action"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/client"
	"github.com/aretw0/conncheck/pkg/domain"
)

// Version is the release of this module.
//
//go:embed VERSION
var Version string

type options struct {
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	httpClient *http.Client
	validate   bool
	mode       app.Mode
}

// Option defines a functional option for New.
type Option func(*options)

// WithLogger sets a structured logger shared by the client, controller and app.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on the controller.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithHTTPClient replaces the http.Client used to reach the backend.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithResponseValidation toggles OpenAPI validation of backend responses. Enabled by default.
func WithResponseValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

// WithMode selects the basic (health and greeting) or full demo.
func WithMode(mode app.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// New wires an HTTP client for the backend at baseURL, a controller and the demo app.
func New(ctx context.Context, baseURL string, opts ...Option) (*app.App, error) {
	o := &options{
		logger:   logging.NewNop(),
		validate: true,
		mode:     app.ModeFull,
	}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := []client.Option{client.WithLogger(o.logger)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(o.httpClient))
	}
	if o.validate {
		v, err := client.NewValidator(ctx)
		if err != nil {
			return nil, fmt.Errorf("error initializing response validation: %w", err)
		}
		clientOpts = append(clientOpts, client.WithValidator(v))
	}

	c, err := client.New(baseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	ctrl := action.NewController(
		action.WithLogger(o.logger),
		action.WithLifecycleHooks(o.hooks),
	)
	return app.New(c,
		app.WithController(ctrl),
		app.WithMode(o.mode),
		app.WithLogger(o.logger),
	), nil
}
