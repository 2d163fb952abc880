package memory_test

import (
	"testing"

	"github.com/aretw0/conncheck/pkg/adapters/memory"
	"github.com/aretw0/conncheck/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunTodoStoreContract(t, memory.NewStore())
}
