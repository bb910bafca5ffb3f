package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

func newStorage(t *testing.T) *localstore.Store {
	t.Helper()
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return storage
}

func TestSession_StartsUnauthenticated(t *testing.T) {
	sess := New(newStorage(t), zerolog.Nop())
	require.NoError(t, sess.Load())

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Token())
}

func TestSession_SetUser_PersistsAcrossLoads(t *testing.T) {
	storage := newStorage(t)

	sess := New(storage, zerolog.Nop())
	user := model.User{ID: 42, Name: "Dana", Role: model.RoleSupplier}
	require.NoError(t, sess.SetUser(user, "token-abc"))

	// A fresh session over the same storage rehydrates the user.
	reloaded := New(storage, zerolog.Nop())
	require.NoError(t, reloaded.Load())

	assert.True(t, reloaded.Authenticated())
	assert.Equal(t, "token-abc", reloaded.Token())
	got := reloaded.User()
	require.NotNil(t, got)
	assert.Equal(t, 42, got.ID)
	assert.Equal(t, model.RoleSupplier, got.Role)
}

func TestSession_Teardown_ClearsEverything(t *testing.T) {
	storage := newStorage(t)
	sess := New(storage, zerolog.Nop())
	require.NoError(t, sess.SetUser(model.User{ID: 1, Role: model.RoleUser}, "token"))

	called := false
	sess.OnTeardown(func() { called = true })
	sess.Teardown()

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Token())
	assert.True(t, called)

	// Persisted session keys are gone too.
	reloaded := New(storage, zerolog.Nop())
	require.NoError(t, reloaded.Load())
	assert.False(t, reloaded.Authenticated())
}

func TestSession_Load_PartialSnapshot(t *testing.T) {
	storage := newStorage(t)
	require.NoError(t, storage.Put("token", "orphan-token"))

	// A token without a user leaves the session unauthenticated.
	sess := New(storage, zerolog.Nop())
	require.NoError(t, sess.Load())
	assert.False(t, sess.Authenticated())
}

func TestSession_User_ReturnsCopy(t *testing.T) {
	sess := New(newStorage(t), zerolog.Nop())
	require.NoError(t, sess.SetUser(model.User{ID: 1, Name: "Dana", Role: model.RoleUser}, "token"))

	got := sess.User()
	got.Name = "changed"
	assert.Equal(t, "Dana", sess.User().Name)
}
