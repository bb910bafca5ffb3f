package permission

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/localstore"
	"storefront/internal/model"
	"storefront/internal/session"
)

func newTestChecker(t *testing.T, user *model.User) *Checker {
	t.Helper()
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	sess := session.New(storage, zerolog.Nop())
	if user != nil {
		require.NoError(t, sess.SetUser(*user, "test-token"))
	}
	return NewChecker(sess)
}

func TestChecker_Has_RoleTable(t *testing.T) {
	all := []Permission{
		ProductView, ProductCreate, ProductEdit, ProductDelete,
		ProductOrderView, OrderCreate, OrderView, OrderDelete,
	}

	tests := []struct {
		name    string
		role    model.Role
		granted []Permission
	}{
		{
			name: "supplier permissions",
			role: model.RoleSupplier,
			granted: []Permission{
				ProductView, ProductCreate, ProductEdit, ProductDelete,
				ProductOrderView,
			},
		},
		{
			name:    "user permissions",
			role:    model.RoleUser,
			granted: []Permission{ProductView, OrderCreate, OrderView, OrderDelete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newTestChecker(t, &model.User{ID: 1, Role: tt.role})

			grantedSet := make(map[Permission]bool)
			for _, p := range tt.granted {
				grantedSet[p] = true
			}

			// Everything in the set is granted, everything outside it denied.
			for _, p := range all {
				assert.Equal(t, grantedSet[p], checker.Has(p), "permission %s", p)
			}
		})
	}
}

func TestChecker_Has_Unauthenticated(t *testing.T) {
	checker := newTestChecker(t, nil)

	assert.False(t, checker.Has(ProductView))
	assert.False(t, checker.HasAny(ProductView, OrderView))
	assert.False(t, checker.HasAll(ProductView))
	assert.False(t, checker.HasRole(model.RoleUser))
}

func TestChecker_Has_UnknownRole(t *testing.T) {
	checker := newTestChecker(t, &model.User{ID: 1, Role: "admin"})

	// Unrecognized roles hold no permissions, not an error.
	assert.False(t, checker.Has(ProductView))
	assert.False(t, checker.Has(OrderCreate))
}

func TestChecker_HasAny(t *testing.T) {
	checker := newTestChecker(t, &model.User{ID: 1, Role: model.RoleUser})

	assert.True(t, checker.HasAny(ProductCreate, OrderCreate))
	assert.False(t, checker.HasAny(ProductCreate, ProductDelete))
	assert.False(t, checker.HasAny())
}

func TestChecker_HasAll(t *testing.T) {
	checker := newTestChecker(t, &model.User{ID: 1, Role: model.RoleSupplier})

	assert.True(t, checker.HasAll(ProductCreate, ProductEdit, ProductDelete))
	assert.False(t, checker.HasAll(ProductCreate, OrderCreate))
	assert.True(t, checker.HasAll())
}

func TestChecker_HasRole_ExactMatchOnly(t *testing.T) {
	// A role string containing another role's name must not match it.
	checker := newTestChecker(t, &model.User{ID: 1, Role: "superuser"})

	assert.False(t, checker.HasRole(model.RoleUser))
	assert.False(t, checker.HasRole(model.RoleSupplier))
	assert.True(t, checker.HasRole(model.Role("superuser")))
}

func TestChecker_AfterTeardown(t *testing.T) {
	storage, err := localstore.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	sess := session.New(storage, zerolog.Nop())
	require.NoError(t, sess.SetUser(model.User{ID: 1, Role: model.RoleSupplier}, "token"))

	checker := NewChecker(sess)
	require.True(t, checker.Has(ProductCreate))

	sess.Teardown()
	assert.False(t, checker.Has(ProductCreate))
	assert.False(t, checker.HasRole(model.RoleSupplier))
}
