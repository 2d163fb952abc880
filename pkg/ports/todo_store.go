package ports

import (
	"context"

	"github.com/aretw0/conncheck/pkg/domain"
)

// TodoStore persists the reference backend's todo list.
type TodoStore interface {
	// List returns every todo ordered by id.
	List(ctx context.Context) ([]domain.Todo, error)

	// Add creates an open todo and assigns it the next id.
	Add(ctx context.Context, title string) (domain.Todo, error)

	// Toggle flips IsCompleted and returns the updated todo.
	// Returns domain.ErrTodoNotFound if the id does not exist.
	Toggle(ctx context.Context, id int) (domain.Todo, error)

	// Delete removes the todo.
	// Returns domain.ErrTodoNotFound if the id does not exist.
	Delete(ctx context.Context, id int) error
}
