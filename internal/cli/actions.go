package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
)

// ActionFunc runs one demo action and returns the view to print.
type ActionFunc func(ctx context.Context, a *app.App) (any, error)

// RunAction executes a single action against the configured backend and prints its view.
// A failed action is reported as "<label>: <cause>", the same text the
// controller stores in LastError.
func RunAction(opts Options, w io.Writer, fn ActionFunc) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := createLogger(cfg.Debug)

	sigCtx := NewShutdownContext(context.Background())
	defer sigCtx.Cancel()

	a, err := createApp(sigCtx, cfg, opts, logger)
	if err != nil {
		return err
	}

	view, err := fn(sigCtx, a)
	if err != nil {
		return err
	}
	return printView(w, view, opts.JSON)
}

// printView writes v as indented JSON, or as a short human readable line.
func printView(w io.Writer, v any, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch view := v.(type) {
	case domain.Health:
		fmt.Fprintf(w, "%s: %s\n", view.Status, view.Message)
	case domain.Greeting:
		fmt.Fprintf(w, "%s (%s)\n", view.Greeting, view.Timestamp)
	case []domain.Todo:
		if len(view) == 0 {
			fmt.Fprintln(w, "No todos.")
		}
		for _, t := range view {
			mark := " "
			if t.IsCompleted {
				mark = "x"
			}
			fmt.Fprintf(w, "[%s] %d %s\n", mark, t.ID, t.Title)
		}
	case domain.Calculation:
		fmt.Fprintln(w, view.String())
	case domain.RandomNumber:
		fmt.Fprintln(w, view.RandomNumber)
	default:
		fmt.Fprintf(w, "%v\n", view)
	}
	return nil
}

// HealthAction checks the backend and returns its health payload.
func HealthAction() ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.CheckHealth(ctx); err != nil {
			return nil, err
		}
		h, _ := a.Health()
		return h, nil
	}
}

// GreetingAction fetches the greeting for name, or the default one when name is blank.
func GreetingAction(name string) ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.FetchGreeting(ctx, name); err != nil {
			return nil, err
		}
		g, _ := a.Greeting()
		return g, nil
	}
}

// ListTodosAction returns the current todo list.
func ListTodosAction() ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.FetchTodos(ctx); err != nil {
			return nil, err
		}
		return a.Todos(), nil
	}
}

// AddTodoAction creates a todo and returns the refreshed list.
func AddTodoAction(title string) ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.AddTodo(ctx, title); err != nil {
			return nil, err
		}
		return a.Todos(), nil
	}
}

// ToggleTodoAction flips the completion flag of todo id and returns the refreshed list.
func ToggleTodoAction(id int) ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.ToggleTodo(ctx, id); err != nil {
			return nil, err
		}
		return a.Todos(), nil
	}
}

// DeleteTodoAction removes todo id and returns the refreshed list.
func DeleteTodoAction(id int) ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.DeleteTodo(ctx, id); err != nil {
			return nil, err
		}
		return a.Todos(), nil
	}
}

// CalculateAction asks the backend to apply op to x and y.
func CalculateAction(x, y float64, op domain.Operation) ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.Calculate(ctx, x, y, op); err != nil {
			return nil, err
		}
		c, _ := a.Calculation()
		return c, nil
	}
}

// RandomAction draws a number between 1 and 100.
func RandomAction() ActionFunc {
	return func(ctx context.Context, a *app.App) (any, error) {
		if err := a.FetchRandom(ctx); err != nil {
			return nil, err
		}
		n, _ := a.Random()
		return n, nil
	}
}
