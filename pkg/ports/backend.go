package ports

import (
	"context"

	"github.com/aretw0/conncheck/pkg/domain"
)

// Backend is the remote API exercised by the demo actions.
type Backend interface {
	Health(ctx context.Context) (domain.Health, error)
	Greeting(ctx context.Context, name string) (domain.Greeting, error)
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	AddTodo(ctx context.Context, title string) error
	ToggleTodo(ctx context.Context, id int) error
	DeleteTodo(ctx context.Context, id int) error
	Calculate(ctx context.Context, a, b float64, op domain.Operation) (domain.Calculation, error)
	Random(ctx context.Context, min, max int) (domain.RandomNumber, error)
}
