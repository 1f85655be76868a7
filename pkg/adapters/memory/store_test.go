package memory_test

import (
	"testing"

	"github.com/provisio/provisio/pkg/adapters/memory"
	"github.com/provisio/provisio/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
