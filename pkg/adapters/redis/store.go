package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/aretw0/conncheck/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "conncheck:"

// Store implements ports.TodoStore using Redis.
// Todos live in one hash (id -> JSON) and ids come from an INCR counter.
type Store struct {
	client  *backend.Client
	prefix  string
	lockTTL time.Duration
	locker  ports.DistributedLocker
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLockTTL sets the expiration of per-todo locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.lockTTL = ttl
	}
}

// New creates a new Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:  client,
		prefix:  DefaultPrefix,
		lockTTL: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(store)
	}
	store.locker = NewLocker(client, store.prefix)
	return store
}

func (s *Store) todosKey() string {
	return s.prefix + "todos"
}

func (s *Store) seqKey() string {
	return s.prefix + "seq"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// List returns all todos ordered by id.
func (s *Store) List(ctx context.Context) ([]domain.Todo, error) {
	raw, err := s.client.HGetAll(ctx, s.todosKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(raw))
	for field, val := range raw {
		var todo domain.Todo
		if err := json.Unmarshal([]byte(val), &todo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todo %s: %w", field, err)
		}
		todos = append(todos, todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

// Add stores a new open todo.
func (s *Store) Add(ctx context.Context, title string) (domain.Todo, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return domain.Todo{}, fmt.Errorf("failed to allocate todo id: %w", err)
	}

	todo := domain.Todo{ID: int(id), Title: title}
	if err := s.put(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Toggle flips the completion flag under a per-todo lock.
func (s *Store) Toggle(ctx context.Context, id int) (domain.Todo, error) {
	field := strconv.Itoa(id)

	unlock, err := s.locker.Lock(ctx, "todo:"+field, s.lockTTL)
	if err != nil {
		return domain.Todo{}, err
	}
	defer func() {
		_ = unlock(context.WithoutCancel(ctx))
	}()

	val, err := s.client.HGet(ctx, s.todosKey(), field).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Todo{}, domain.ErrTodoNotFound
		}
		return domain.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}

	var todo domain.Todo
	if err := json.Unmarshal([]byte(val), &todo); err != nil {
		return domain.Todo{}, fmt.Errorf("failed to unmarshal todo: %w", err)
	}
	todo.IsCompleted = !todo.IsCompleted

	if err := s.put(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Delete removes the todo.
func (s *Store) Delete(ctx context.Context, id int) error {
	n, err := s.client.HDel(ctx, s.todosKey(), strconv.Itoa(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) put(ctx context.Context, todo domain.Todo) error {
	data, err := json.Marshal(todo)
	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}
	if err := s.client.HSet(ctx, s.todosKey(), strconv.Itoa(todo.ID), data).Err(); err != nil {
		return fmt.Errorf("failed to save todo: %w", err)
	}
	return nil
}
