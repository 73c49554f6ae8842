package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreWith_CopiesValues(t *testing.T) {
	seed := map[string]any{"query.top_k": 5}
	store := NewConfigStoreWith(seed)

	seed["query.top_k"] = 9

	assert.Equal(t, 5, store.GetInt("query.top_k"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.provider", "ollama"))
	require.NoError(t, store.Set("embedding.provider", "openai"))

	val, ok := store.Get("embedding.provider")
	assert.True(t, ok)
	assert.Equal(t, "openai", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"vector.backend":                "qdrant",
		"vector.qdrant.port":            int64(6334),
		"query.top_k":                   float64(3),
		"embedding.requests_per_second": 2.5,
		"verbose":                       true,
	})

	assert.Equal(t, "qdrant", store.GetString("vector.backend"))
	assert.Equal(t, 6334, store.GetInt("vector.qdrant.port"))
	assert.Equal(t, 3, store.GetInt("query.top_k"))
	assert.InDelta(t, 2.5, store.GetFloat("embedding.requests_per_second"), 1e-9)
	assert.InDelta(t, 6334.0, store.GetFloat("vector.qdrant.port"), 1e-9)
	assert.True(t, store.GetBool("verbose"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"vector.backend": 42,
		"query.top_k":    "three",
		"verbose":        "true",
	})

	assert.Equal(t, "", store.GetString("vector.backend"))
	assert.Equal(t, 0, store.GetInt("query.top_k"))
	assert.Zero(t, store.GetFloat("query.top_k"))
	assert.False(t, store.GetBool("verbose"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_SaveAndLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("data_dir", "/tmp/finrag")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "/tmp/finrag", store.GetString("data_dir"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("query.top_k", id)
			_ = store.GetInt("query.top_k")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("query.top_k")
	assert.True(t, ok)
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"vector.backend": "flat", "embedding.provider": "hashing"})
	assert.Equal(t, []string{"embedding.provider", "vector.backend"}, store.Keys())
}
