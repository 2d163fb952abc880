package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/conncheck/pkg/domain"
)

// Store implements ports.TodoStore in memory.
// Safe for concurrent use.
type Store struct {
	data   map[int]domain.Todo
	nextID int
	mu     sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data:   make(map[int]domain.Todo),
		nextID: 1,
	}
}

// List returns all todos ordered by id.
func (s *Store) List(ctx context.Context) ([]domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.data))
	for _, todo := range s.data {
		todos = append(todos, todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

// Add stores a new open todo.
func (s *Store) Add(ctx context.Context, title string) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := domain.Todo{ID: s.nextID, Title: title}
	s.data[todo.ID] = todo
	s.nextID++
	return todo, nil
}

// Toggle flips the completion flag.
func (s *Store) Toggle(ctx context.Context, id int) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.data[id]
	if !ok {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	todo.IsCompleted = !todo.IsCompleted
	s.data[id] = todo
	return todo, nil
}

// Delete removes the todo.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(s.data, id)
	return nil
}
