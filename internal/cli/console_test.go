package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/conncheck/pkg/action"
	"github.com/aretw0/conncheck/pkg/adapters/memory"
	"github.com/aretw0/conncheck/pkg/adapters/stub"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/client"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsoleApp(t *testing.T, console *Console, opts ...app.Option) *app.App {
	t.Helper()
	srv := httptest.NewServer(stub.NewHandler(memory.NewStore()))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)
	ctrl := action.NewController(action.WithLifecycleHooks(console.Hooks()))
	return app.New(c, append([]app.Option{app.WithController(ctrl)}, opts...)...)
}

func TestConsole_Session(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"add Buy milk",
		"add Walk dog",
		"toggle 1",
		"rm 2",
		"calc 10 5 /",
		"greet Gopher",
		"quit",
		"health",
	}, "\n"))
	var out bytes.Buffer
	console := NewConsole(in, &out, nil)
	a := newConsoleApp(t, console)

	require.NoError(t, console.Run(context.Background(), a))

	text := out.String()
	assert.Contains(t, text, "... Checking... (health)")
	assert.Contains(t, text, "... Adding... (addTodo)")
	assert.Contains(t, text, "... Updating... (toggle-1)")
	assert.Contains(t, text, "... Deleting... (delete-2)")
	assert.Contains(t, text, "- [x] 1. Buy milk")
	assert.Contains(t, text, "`10 divide 5 = 2`")
	assert.Contains(t, text, "Hello, Gopher!")
	assert.Contains(t, text, ">>> Bye!")
	assert.Equal(t, []domain.Todo{{ID: 1, Title: "Buy milk", IsCompleted: true}}, a.Todos())
	assert.Equal(t, 1, strings.Count(text, "(health)"), "commands after quit are not run")
}

func TestConsole_EOFEndsSession(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader("random\n"), &out, nil)
	a := newConsoleApp(t, console)

	require.NoError(t, console.Run(context.Background(), a))

	_, ok := a.Random()
	assert.True(t, ok)
}

func TestConsole_Rejections(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out, nil)
	a := newConsoleApp(t, console)

	tests := []struct {
		line string
		want string
	}{
		{"add   ", ">>> Error: todo title is empty"},
		{"toggle abc", `>>> Error: invalid todo id "abc"`},
		{"rm", ">>> Error: expected a todo id"},
		{"calc 1 2 pow", `>>> Error: unknown operation: "pow"`},
		{"calc 1", ">>> Error: expected <a> <b> <operation>"},
		{"dance", `>>> Unknown command "dance"`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			_ = console.Dispatch(ctx, a, tt.line)
			assert.Contains(t, out.String(), tt.want)
		})
	}
	assert.Equal(t, domain.NewActionState(), a.State())
}

func TestConsole_FailureShowsLastError(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out, nil)
	a := newConsoleApp(t, console)

	err := console.Dispatch(context.Background(), a, "toggle 9")

	assert.Error(t, err)
	assert.Contains(t, out.String(), "> **Error:** Failed to toggle todo: backend returned status 404: todo 9 not found")
}

func TestConsole_BasicMode(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out, nil)
	a := newConsoleApp(t, console, app.WithMode(app.ModeBasic))

	_ = console.Dispatch(context.Background(), a, "add Buy milk")
	assert.Contains(t, out.String(), `Unknown command "add"`)

	out.Reset()
	require.NoError(t, console.Dispatch(context.Background(), a, "help"))
	assert.Contains(t, out.String(), "greet [name]")
	assert.NotContains(t, out.String(), "toggle <id>")
}

func TestParseCalculation(t *testing.T) {
	tests := []struct {
		args []string
		op   domain.Operation
	}{
		{[]string{"1", "2", "+"}, domain.OpAdd},
		{[]string{"1", "2", "-"}, domain.OpSubtract},
		{[]string{"1", "2", "x"}, domain.OpMultiply},
		{[]string{"1", "2", "Divide"}, domain.OpDivide},
	}
	for _, tt := range tests {
		x, y, op, err := ParseCalculation(tt.args)
		require.NoError(t, err)
		assert.Equal(t, 1.0, x)
		assert.Equal(t, 2.0, y)
		assert.Equal(t, tt.op, op)
	}

	_, _, _, err := ParseCalculation([]string{"a", "2", "+"})
	assert.Error(t, err)
}
