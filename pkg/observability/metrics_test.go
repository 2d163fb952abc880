package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/conncheck/pkg/action"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	ctrl := action.NewController(action.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	ok := func(context.Context) (any, error) { return "ok", nil }
	fail := func(context.Context) (any, error) { return nil, errors.New("boom") }

	require.NoError(t, ctrl.Run(ctx, domain.KeyHealth, ok))
	require.NoError(t, ctrl.Run(ctx, domain.ToggleKey(1), ok))
	require.Error(t, ctrl.Run(ctx, domain.ToggleKey(2), fail))

	expected := `
# HELP conncheck_actions_total Total number of settled actions
# TYPE conncheck_actions_total counter
conncheck_actions_total{action="health",outcome="success"} 1
conncheck_actions_total{action="toggle",outcome="failure"} 1
conncheck_actions_total{action="toggle",outcome="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "conncheck_actions_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "conncheck_action_duration_seconds"))
}

func TestMetrics_InFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	ctrl := action.NewController(action.WithLifecycleHooks(m.Hooks()))

	var during float64
	err = ctrl.Run(context.Background(), domain.KeyRandom, func(context.Context) (any, error) {
		during = testutil.ToFloat64(m.inFlight)
		return nil, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_InFlightReleasedOnPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	ctrl := action.NewController(action.WithLifecycleHooks(m.Hooks()))

	assert.Panics(t, func() {
		_ = ctrl.Run(context.Background(), domain.KeyFetchTodos, func(context.Context) (any, error) {
			panic("boom")
		})
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("fetchTodos", "failure")))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestChainHooks(t *testing.T) {
	var calls []string
	record := func(name string) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnActionStart: func(context.Context, *domain.ActionEvent) {
				calls = append(calls, name+":start")
			},
			OnActionSettle: func(context.Context, *domain.ActionEvent) {
				calls = append(calls, name+":settle")
			},
		}
	}

	hooks := ChainHooks(record("a"), domain.LifecycleHooks{}, record("b"))
	ctrl := action.NewController(action.WithLifecycleHooks(hooks))
	require.NoError(t, ctrl.Run(context.Background(), domain.KeyGreeting, func(context.Context) (any, error) {
		return nil, nil
	}))

	assert.Equal(t, []string{"a:start", "b:start", "a:settle", "b:settle"}, calls)
}

func TestChainHooks_Empty(t *testing.T) {
	hooks := ChainHooks()
	assert.Nil(t, hooks.OnActionStart)
	assert.Nil(t, hooks.OnActionSettle)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctrl := action.NewController(action.WithLifecycleHooks(LoggingHooks(logger)))

	_ = ctrl.Run(context.Background(), domain.KeyHealth, func(context.Context) (any, error) {
		return nil, errors.New("connection refused")
	})

	out := buf.String()
	assert.Contains(t, out, "msg=action_start action=health")
	assert.Contains(t, out, "level=WARN msg=action_settle action=health")
	assert.Contains(t, out, `"Backend not reachable: connection refused"`)
}
