package environment

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLastWriterWins(t *testing.T) {
	t.Parallel()

	store := NewStore(map[string]string{ProjectKeyProperty: "seed"})
	store.SetProperty(ProjectKeyProperty, "acme")
	store.SetProperty(ProjectKeyProperty, "other")

	value, ok := store.Property(ProjectKeyProperty)
	require.True(t, ok)
	require.Equal(t, "other", value)
}

func TestStorePropertyOrFallsBack(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	require.Equal(t, "en", store.PropertyOr(LocaleProperty, "en"))

	_, ok := store.Property(LocaleProperty)
	require.False(t, ok)
}

func TestStoreSeedIsCopied(t *testing.T) {
	t.Parallel()

	seed := map[string]string{"a": "1"}
	store := NewStore(seed)
	seed["a"] = "2"

	require.Equal(t, "1", store.PropertyOr("a", ""))

	snap := store.Snapshot()
	snap["a"] = "3"
	require.Equal(t, "1", store.PropertyOr("a", ""))
}

func TestStoreKeysSorted(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	store.SetProperty("b", "2")
	store.SetProperty("a", "1")
	store.SetProperty("c", "3")

	require.Equal(t, []string{"a", "b", "c"}, store.Keys())
}

func TestStoreConcurrentWriters(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.SetProperty(fmt.Sprintf("key.%d", i), "v")
			_, _ = store.Property("shared")
		}(i)
	}
	wg.Wait()

	require.Len(t, store.Keys(), 16)
}
