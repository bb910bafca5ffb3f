package cart

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

func TestAdoptAnonymous(t *testing.T) {
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	anon, err := NewStore(storage, Key(nil), zerolog.Nop())
	require.NoError(t, err)
	_, err = anon.AddToCart(testProduct(1, "10.00"), 2)
	require.NoError(t, err)
	_, err = anon.AddToCart(testProduct(2, "5.50"), 1)
	require.NoError(t, err)

	user := &model.User{ID: 42, Role: model.RoleUser}

	// The user already had product 1 in their own cart.
	mine, err := NewStore(storage, Key(user), zerolog.Nop())
	require.NoError(t, err)
	_, err = mine.AddToCart(testProduct(1, "10.00"), 3)
	require.NoError(t, err)

	require.NoError(t, AdoptAnonymous(storage, user, zerolog.Nop()))

	merged, err := NewStore(storage, Key(user), zerolog.Nop())
	require.NoError(t, err)
	items := merged.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity, "quantities merge")
	assert.Equal(t, 2, items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)

	// The anonymous cart is empty afterwards.
	emptied, err := NewStore(storage, Key(nil), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, emptied.Items())
}

func TestAdoptAnonymous_EmptyAnonymousCart(t *testing.T) {
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	user := &model.User{ID: 42, Role: model.RoleUser}
	require.NoError(t, AdoptAnonymous(storage, user, zerolog.Nop()))

	mine, err := NewStore(storage, Key(user), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, mine.Items())
}

func TestAdoptAnonymous_NoUser(t *testing.T) {
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, AdoptAnonymous(storage, nil, zerolog.Nop()))
}
