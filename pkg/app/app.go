// Package app holds the demo actions and the views derived from the
// controller state.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/action"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/aretw0/conncheck/pkg/ports"
)

// Mode selects which demo the app drives.
type Mode int

const (
	// ModeFull covers health, greeting, todos, calculator and random number.
	ModeFull Mode = iota
	// ModeBasic covers the health check and the greeting only.
	ModeBasic
)

func (m Mode) String() string {
	if m == ModeBasic {
		return "basic"
	}
	return "full"
}

// App binds a backend to a controller.
type App struct {
	backend ports.Backend
	ctrl    *action.Controller
	mode    Mode
	logger  *slog.Logger

	mu       sync.Mutex
	lastCalc string
}

// Option configures the App.
type Option func(*App)

// WithController replaces the default controller, e.g. to attach hooks.
func WithController(ctrl *action.Controller) Option {
	return func(a *App) {
		a.ctrl = ctrl
	}
}

// WithMode selects the demo. Defaults to ModeFull.
func WithMode(mode Mode) Option {
	return func(a *App) {
		a.mode = mode
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New creates an App over backend.
func New(backend ports.Backend, opts ...Option) *App {
	a := &App{
		backend: backend,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.ctrl == nil {
		a.ctrl = action.NewController(action.WithLogger(a.logger))
	}
	return a
}

// Mode returns the demo the app drives.
func (a *App) Mode() Mode {
	return a.mode
}

// Controller exposes the underlying controller.
func (a *App) Controller() *action.Controller {
	return a.ctrl
}

// Mount performs the initial refresh: the health check, plus the todo list
// in the full demo. Failures are reported through LastError and joined in
// the returned error.
func (a *App) Mount(ctx context.Context) error {
	err := a.CheckHealth(ctx)
	if a.mode == ModeFull {
		err = errors.Join(err, a.FetchTodos(ctx))
	}
	return err
}

// CheckHealth runs the "health" action.
func (a *App) CheckHealth(ctx context.Context) error {
	return a.ctrl.Run(ctx, domain.KeyHealth, func(ctx context.Context) (any, error) {
		return a.backend.Health(ctx)
	})
}

// FetchGreeting runs the "greeting" action. A blank name asks for the default greeting.
func (a *App) FetchGreeting(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	return a.ctrl.Run(ctx, domain.KeyGreeting, func(ctx context.Context) (any, error) {
		return a.backend.Greeting(ctx, name)
	})
}

// FetchTodos runs the "fetchTodos" action. The list replaces the previous one.
func (a *App) FetchTodos(ctx context.Context) error {
	return a.ctrl.Run(ctx, domain.KeyFetchTodos, func(ctx context.Context) (any, error) {
		return a.backend.ListTodos(ctx)
	})
}

// AddTodo posts a new todo and refetches the list on success.
// A blank title is rejected before any request and leaves the state untouched.
func (a *App) AddTodo(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ErrEmptyTitle
	}
	return a.mutate(ctx, domain.KeyAddTodo, func(ctx context.Context) error {
		return a.backend.AddTodo(ctx, title)
	})
}

// ToggleTodo flips the completion flag of id and refetches the list on success.
func (a *App) ToggleTodo(ctx context.Context, id int) error {
	return a.mutate(ctx, domain.ToggleKey(id), func(ctx context.Context) error {
		return a.backend.ToggleTodo(ctx, id)
	})
}

// DeleteTodo removes id and refetches the list on success.
func (a *App) DeleteTodo(ctx context.Context, id int) error {
	return a.mutate(ctx, domain.DeleteKey(id), func(ctx context.Context) error {
		return a.backend.DeleteTodo(ctx, id)
	})
}

// mutate runs a write under key, then reconciles by refetching the full list.
// The list is not touched when the write fails.
func (a *App) mutate(ctx context.Context, key string, write func(context.Context) error) error {
	err := a.ctrl.Run(ctx, key, func(ctx context.Context) (any, error) {
		return nil, write(ctx)
	})
	if err != nil {
		return err
	}
	return a.FetchTodos(ctx)
}

// Calculate runs the "calc-<op>" action.
func (a *App) Calculate(ctx context.Context, x, y float64, op domain.Operation) error {
	if !op.Valid() {
		_, err := domain.ParseOperation(string(op))
		return err
	}
	key := domain.CalculateKey(op)
	err := a.ctrl.Run(ctx, key, func(ctx context.Context) (any, error) {
		return a.backend.Calculate(ctx, x, y, op)
	})
	if err == nil {
		a.mu.Lock()
		a.lastCalc = key
		a.mu.Unlock()
	}
	return err
}

// FetchRandom runs the "random" action over [domain.RandomMin, domain.RandomMax].
func (a *App) FetchRandom(ctx context.Context) error {
	return a.ctrl.Run(ctx, domain.KeyRandom, func(ctx context.Context) (any, error) {
		return a.backend.Random(ctx, domain.RandomMin, domain.RandomMax)
	})
}
