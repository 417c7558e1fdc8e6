package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		store := NewConfigStore()
		require.NotNil(t, store)
		assert.NotNil(t, store.values)
	})

	t.Run("seeded", func(t *testing.T) {
		seed := map[string]any{"profiles.filter.order": "source"}
		store := NewConfigStore(seed)

		assert.Equal(t, "source", store.GetString("profiles.filter.order"))

		seed["profiles.filter.order"] = "requested"
		assert.Equal(t, "source", store.GetString("profiles.filter.order"))
	})
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"s":     "text",
		"i":     int64(4),
		"b":     true,
		"list":  []any{"id", 3, "append"},
		"strs":  []string{"a", "b"},
		"wrong": 1.5,
	})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 4, store.GetInt("i"))
	assert.Equal(t, 0, store.GetInt("wrong"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, []string{"id", "append"}, store.GetStringSlice("list"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strs"))
	assert.Nil(t, store.GetStringSlice("s"))
}

func TestConfigStore_SetAndDelete(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("profiles.filter.columns", []string{"id"}))
	require.NoError(t, store.Set("profiles.filter.order", "source"))
	require.NoError(t, store.Set("profiles.filterx.order", "source"))
	require.NoError(t, store.Set("profiles.extract.index", false))

	require.NoError(t, store.Delete("profiles.filter"))

	_, ok := store.Get("profiles.filter.columns")
	assert.False(t, ok)
	_, ok = store.Get("profiles.filter.order")
	assert.False(t, ok)
	_, ok = store.Get("profiles.filterx.order")
	assert.True(t, ok, "sibling with shared prefix must survive")
	_, ok = store.Get("profiles.extract.index")
	assert.True(t, ok)

	assert.NoError(t, store.Delete("absent"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("k", i)
			_ = store.GetInt("k")
			_ = store.Delete("other")
		}()
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}
