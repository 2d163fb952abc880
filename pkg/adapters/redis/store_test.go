package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/conncheck/pkg/adapters/redis"
	"github.com/aretw0/conncheck/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunTodoStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	todo, err := store.Add(ctx, "Buy milk")
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:todos"), "Expected hash with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:seq"), "Expected id counter with custom prefix to exist")
	assert.Equal(t, `{"id":1,"title":"Buy milk","isCompleted":false}`, mr.HGet("custom:app:todos", "1"))

	_, err = store.Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("custom:app:lock:todo:1"), "Toggle must release its lock")
}

func TestRedisStore_SharedBetweenReplicas(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	a := redis.NewFromClient(client)
	b := redis.NewFromClient(client)

	todo, err := a.Add(ctx, "Shared")
	require.NoError(t, err)

	toggled, err := b.Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	todos, err := a.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].IsCompleted)
}
