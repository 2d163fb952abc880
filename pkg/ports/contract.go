package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTodoStoreContract runs a suite of tests to verify that a TodoStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunTodoStoreContract(t *testing.T, store TodoStore) {
	ctx := context.Background()

	t.Run("Empty List", func(t *testing.T) {
		todos, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("Add and List", func(t *testing.T) {
		milk, err := store.Add(ctx, "Buy milk")
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", milk.Title)
		assert.False(t, milk.IsCompleted)

		bread, err := store.Add(ctx, "Buy bread")
		require.NoError(t, err)
		assert.Greater(t, bread.ID, milk.ID, "ids must increase")

		todos, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, milk, todos[0])
		assert.Equal(t, bread, todos[1])
	})

	t.Run("List Is Idempotent", func(t *testing.T) {
		first, err := store.List(ctx)
		require.NoError(t, err)
		second, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Toggle", func(t *testing.T) {
		todo, err := store.Add(ctx, "Walk dog")
		require.NoError(t, err)

		toggled, err := store.Toggle(ctx, todo.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsCompleted)

		back, err := store.Toggle(ctx, todo.ID)
		require.NoError(t, err)
		assert.False(t, back.IsCompleted)
	})

	t.Run("Delete", func(t *testing.T) {
		todo, err := store.Add(ctx, "Temporary")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, todo.ID))

		todos, err := store.List(ctx)
		require.NoError(t, err)
		for _, other := range todos {
			assert.NotEqual(t, todo.ID, other.ID)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		_, err := store.Toggle(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)

		err = store.Delete(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("Concurrent Add", func(t *testing.T) {
		before, err := store.List(ctx)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Add(ctx, "parallel")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		after, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)+10)

		seen := make(map[int]bool)
		for _, todo := range after {
			assert.False(t, seen[todo.ID], "duplicate id %d", todo.ID)
			seen[todo.ID] = true
		}
	})
}
