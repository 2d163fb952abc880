package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/conncheck/pkg/domain"
)

// ChainHooks merges hook sets; callbacks run in the given order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, settles []func(context.Context, *domain.ActionEvent)
	for _, h := range sets {
		if h.OnActionStart != nil {
			starts = append(starts, h.OnActionStart)
		}
		if h.OnActionSettle != nil {
			settles = append(settles, h.OnActionSettle)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnActionStart = func(ctx context.Context, e *domain.ActionEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(settles) > 0 {
		out.OnActionSettle = func(ctx context.Context, e *domain.ActionEvent) {
			for _, fn := range settles {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks writes one record per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			logger.InfoContext(ctx, "action_start", "action", e.Key, "kind", e.Kind)
		},
		OnActionSettle: func(ctx context.Context, e *domain.ActionEvent) {
			if e.Failed() {
				logger.WarnContext(ctx, "action_settle", "action", e.Key, "duration", e.Duration, "error", e.Error)
				return
			}
			logger.InfoContext(ctx, "action_settle", "action", e.Key, "duration", e.Duration)
		},
	}
}
