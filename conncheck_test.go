package conncheck_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/conncheck"
	"github.com/aretw0/conncheck/pkg/adapters/memory"
	"github.com/aretw0/conncheck/pkg/adapters/stub"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(conncheck.Version))
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := conncheck.New(context.Background(), "localhost:5000")
	assert.Error(t, err)
}

func TestNew_HooksAndMode(t *testing.T) {
	srv := httptest.NewServer(stub.NewHandler(memory.NewStore()))
	defer srv.Close()

	var settled []string
	hooks := domain.LifecycleHooks{
		OnActionSettle: func(_ context.Context, e *domain.ActionEvent) {
			settled = append(settled, e.Key)
		},
	}

	ctx := context.Background()
	a, err := conncheck.New(ctx, srv.URL,
		conncheck.WithLifecycleHooks(hooks),
		conncheck.WithMode(app.ModeBasic),
		conncheck.WithResponseValidation(false),
	)
	require.NoError(t, err)

	require.NoError(t, a.Mount(ctx))
	require.NoError(t, a.FetchGreeting(ctx, "Gopher"))

	assert.Equal(t, app.ModeBasic, a.Mode())
	assert.Equal(t, []string{domain.KeyHealth, domain.KeyGreeting}, settled)
}
