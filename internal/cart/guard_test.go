package cart

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

func TestGuard_UpdateQuantity_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "zero", quantity: 0},
		{name: "negative", quantity: -5},
		{name: "above max", quantity: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			item, err := store.AddToCart(testProduct(1, "10.00"), 2)
			require.NoError(t, err)

			guard := NewGuard(store, zerolog.Nop())
			err = guard.UpdateQuantity(item.ID, tt.quantity)
			assert.ErrorIs(t, err, model.ErrInvalidQuantity)

			// The store was never touched.
			stored, ok := store.Item(item.ID)
			require.True(t, ok)
			assert.Equal(t, 2, stored.Quantity)
			assert.False(t, guard.InFlight(item.ID))
		})
	}
}

func TestGuard_UpdateQuantity_Success(t *testing.T) {
	store := newTestStore(t)
	item, err := store.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)

	guard := NewGuard(store, zerolog.Nop())
	require.NoError(t, guard.UpdateQuantity(item.ID, 5))

	stored, ok := store.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, 5, stored.Quantity)
	assert.False(t, guard.InFlight(item.ID))
	assert.True(t, guard.RecentlyUpdated(item.ID))
}

func TestGuard_Remove(t *testing.T) {
	store := newTestStore(t)
	item, err := store.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)

	guard := NewGuard(store, zerolog.Nop())
	require.NoError(t, guard.Remove(item.ID))

	assert.Empty(t, store.Items())
	assert.False(t, guard.InFlight(item.ID))
}

func TestGuard_RejectsOverlappingOperationOnSameItem(t *testing.T) {
	store := newTestStore(t)
	item, err := store.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)

	guard := NewGuard(store, zerolog.Nop())

	// Simulate an unresolved operation by holding the marker directly.
	require.NoError(t, guard.acquire(item.ID))
	assert.True(t, guard.InFlight(item.ID))

	assert.ErrorIs(t, guard.UpdateQuantity(item.ID, 3), model.ErrItemBusy)
	assert.ErrorIs(t, guard.Remove(item.ID), model.ErrItemBusy)

	guard.release(item.ID)
	require.NoError(t, guard.UpdateQuantity(item.ID, 3))
}

func TestGuard_OtherItemsRemainOperable(t *testing.T) {
	store := newTestStore(t)
	busy, err := store.AddToCart(testProduct(1, "10.00"), 1)
	require.NoError(t, err)
	free, err := store.AddToCart(testProduct(2, "20.00"), 1)
	require.NoError(t, err)

	guard := NewGuard(store, zerolog.Nop())
	require.NoError(t, guard.acquire(busy.ID))

	require.NoError(t, guard.UpdateQuantity(free.ID, 9))
	stored, ok := store.Item(free.ID)
	require.True(t, ok)
	assert.Equal(t, 9, stored.Quantity)
}

func TestGuard_RecentlyUpdated_Expires(t *testing.T) {
	store := newTestStore(t)
	item, err := store.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)

	guard := NewGuard(store, zerolog.Nop())

	now := time.Now()
	guard.now = func() time.Time { return now }
	require.NoError(t, guard.UpdateQuantity(item.ID, 5))
	assert.True(t, guard.RecentlyUpdated(item.ID))

	// Just under the TTL the marker survives.
	guard.now = func() time.Time { return now.Add(1400 * time.Millisecond) }
	assert.True(t, guard.RecentlyUpdated(item.ID))

	// At the TTL it expires.
	guard.now = func() time.Time { return now.Add(1500 * time.Millisecond) }
	assert.False(t, guard.RecentlyUpdated(item.ID))
}

func TestGuard_ClearsMarkerWhenStoreFails(t *testing.T) {
	dir := t.TempDir()
	storage, err := localstore.Open(dir, zerolog.Nop())
	require.NoError(t, err)
	store, err := NewStore(storage, "cart:test", zerolog.Nop())
	require.NoError(t, err)

	item, err := store.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)

	// Make persistence fail underneath the guard.
	require.NoError(t, os.RemoveAll(dir))

	guard := NewGuard(store, zerolog.Nop())
	err = guard.UpdateQuantity(item.ID, 5)
	require.Error(t, err)

	// Cleanup fired: the item is operable again and not highlighted.
	assert.False(t, guard.InFlight(item.ID))
	assert.False(t, guard.RecentlyUpdated(item.ID))
}

func TestGuard_ConcurrentUpdatesOnDistinctItems(t *testing.T) {
	store := newTestStore(t)
	guard := NewGuard(store, zerolog.Nop())

	ids := make([]string, 8)
	for i := range ids {
		item, err := store.AddToCart(testProduct(i+1, "1.00"), 1)
		require.NoError(t, err)
		ids[i] = item.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, guard.UpdateQuantity(id, 3))
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		item, ok := store.Item(id)
		require.True(t, ok)
		assert.Equal(t, 3, item.Quantity)
		assert.False(t, guard.InFlight(id))
	}
}
