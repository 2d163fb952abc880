package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/api/health",
		"/api/greeting",
		"/api/todos",
		"/api/todos/{id}/toggle",
		"/api/todos/{id}",
		"/api/calculate",
		"/api/random",
	} {
		assert.NotNil(t, doc.Paths.Value(path), "missing path %s", path)
	}
}
