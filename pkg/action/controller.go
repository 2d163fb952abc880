package action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/domain"
)

// Func is the remote operation executed by Run.
type Func func(ctx context.Context) (any, error)

// Controller tracks busy, error and result state for remote actions.
// Safe for concurrent use.
type Controller struct {
	mu    sync.RWMutex
	state domain.ActionState

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Controller.
type Option func(*Controller)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state:  domain.NewActionState(),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run marks key as busy, executes fn and records its outcome.
//
// On success the payload is stored under key and LastError is cleared.
// On failure LastError receives "<label>: <cause>" and the previous result for
// key is kept. The busy key is cleared exactly once, including when fn panics.
// The failure is also returned, wrapped with the same label.
func (c *Controller) Run(ctx context.Context, key string, fn Func) error {
	if key == "" {
		return domain.ErrEmptyActionKey
	}

	c.mu.Lock()
	c.state.BusyKey = key
	c.state.LastError = ""
	c.mu.Unlock()

	start := c.now()
	c.emitStart(ctx, key, start)
	c.logger.Debug("Action started", "action", key)

	settled := false
	defer func() {
		if settled {
			c.mu.Lock()
			c.state.BusyKey = ""
			c.mu.Unlock()
			return
		}
		// fn panicked: record a failure, settle, and let the panic continue.
		msg := domain.FailureMessage(key, domain.ErrActionPanicked)
		c.mu.Lock()
		c.state.BusyKey = ""
		c.state.LastError = msg
		c.mu.Unlock()
		c.logger.Error("Action panicked", "action", key)
		c.emitSettle(ctx, key, c.now().Sub(start), msg)
	}()

	payload, runErr := fn(ctx)
	settled = true
	elapsed := c.now().Sub(start)

	if runErr != nil {
		msg := domain.FailureMessage(key, runErr)
		c.mu.Lock()
		c.state.LastError = msg
		c.mu.Unlock()

		c.logger.Warn("Action failed", "action", key, "duration", elapsed, "err", runErr)
		c.emitSettle(ctx, key, elapsed, msg)
		return fmt.Errorf("%s: %w", domain.FailureLabel(key), runErr)
	}

	c.mu.Lock()
	c.state.Results[key] = payload
	c.state.LastError = ""
	c.mu.Unlock()

	c.logger.Debug("Action succeeded", "action", key, "duration", elapsed)
	c.emitSettle(ctx, key, elapsed, "")
	return nil
}

// IsBusy reports whether key is the action currently marked in flight.
func (c *Controller) IsBusy(key string) bool {
	if key == "" {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.BusyKey == key
}

// IsBusyPrefix reports whether the busy key starts with prefix.
// The calculator uses it to disable every operator while one is running.
func (c *Controller) IsBusyPrefix(prefix string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.BusyKey != "" && strings.HasPrefix(c.state.BusyKey, prefix)
}

// BusyKey returns the key of the action in flight, or "".
func (c *Controller) BusyKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.BusyKey
}

// LastError returns the message of the last failure, or "".
func (c *Controller) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.LastError
}

// Result returns the last successful payload stored under key.
func (c *Controller) Result(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.state.Results[key]
	return v, ok
}

// State returns a snapshot of the controller state.
func (c *Controller) State() domain.ActionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Snapshot()
}

func (c *Controller) emitStart(ctx context.Context, key string, at time.Time) {
	if c.hooks.OnActionStart == nil {
		return
	}
	c.hooks.OnActionStart(ctx, &domain.ActionEvent{
		EventBase: domain.EventBase{Timestamp: at, Type: domain.EventActionStart},
		Key:       key,
		Kind:      domain.ActionKind(key),
	})
}

func (c *Controller) emitSettle(ctx context.Context, key string, elapsed time.Duration, errMsg string) {
	if c.hooks.OnActionSettle == nil {
		return
	}
	c.hooks.OnActionSettle(ctx, &domain.ActionEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventActionSettle},
		Key:       key,
		Kind:      domain.ActionKind(key),
		Duration:  elapsed,
		Error:     errMsg,
	})
}
