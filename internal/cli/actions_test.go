package cli

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/conncheck/pkg/adapters/memory"
	"github.com/aretw0/conncheck/pkg/adapters/stub"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubOptions(t *testing.T) Options {
	t.Helper()
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(stub.NewHandler(memory.NewStore()))
	t.Cleanup(srv.Close)
	return Options{APIURL: srv.URL}
}

func TestRunAction_Text(t *testing.T) {
	opts := stubOptions(t)

	var out bytes.Buffer
	require.NoError(t, RunAction(opts, &out, HealthAction()))
	assert.Equal(t, "Healthy: Backend is running\n", out.String())

	out.Reset()
	require.NoError(t, RunAction(opts, &out, AddTodoAction("Buy milk")))
	assert.Equal(t, "[ ] 1 Buy milk\n", out.String())

	out.Reset()
	require.NoError(t, RunAction(opts, &out, ToggleTodoAction(1)))
	assert.Equal(t, "[x] 1 Buy milk\n", out.String())

	out.Reset()
	require.NoError(t, RunAction(opts, &out, CalculateAction(10, 5, domain.OpDivide)))
	assert.Equal(t, "10 divide 5 = 2\n", out.String())

	out.Reset()
	require.NoError(t, RunAction(opts, &out, DeleteTodoAction(1)))
	assert.Equal(t, "No todos.\n", out.String())
}

func TestRunAction_JSON(t *testing.T) {
	opts := stubOptions(t)
	opts.JSON = true

	var out bytes.Buffer
	require.NoError(t, RunAction(opts, &out, GreetingAction("Gopher")))

	assert.Contains(t, out.String(), `"Greeting": "Hello, Gopher!"`)
}

func TestRunAction_Failure(t *testing.T) {
	opts := stubOptions(t)

	err := RunAction(opts, &bytes.Buffer{}, ToggleTodoAction(5))
	assert.EqualError(t, err, "Failed to toggle todo: backend returned status 404: todo 5 not found")

	err = RunAction(opts, &bytes.Buffer{}, AddTodoAction(" "))
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(Options{APIURL: "http://flag:1/", Debug: true, NoValidate: true})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:1", cfg.APIURL)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Validate)
}
