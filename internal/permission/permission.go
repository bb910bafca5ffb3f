// Package permission maps roles to capability tokens and answers
// permission checks for the current session. The mapping is static
// configuration: an exact-match table lookup, never inferred from the
// role string itself. It gates UI affordances only; the server remains
// authoritative.
package permission

import (
	"storefront/internal/model"
	"storefront/internal/session"
)

// Permission is a capability token gating one client action.
type Permission string

// The closed permission vocabulary.
const (
	ProductView      Permission = "product.view"
	ProductCreate    Permission = "product.create"
	ProductEdit      Permission = "product.edit"
	ProductDelete    Permission = "product.delete"
	ProductOrderView Permission = "product.order.view"
	OrderCreate      Permission = "order.create"
	OrderView        Permission = "order.view"
	OrderDelete      Permission = "order.delete"
)

// rolePermissions is the total role→permission table: every valid role
// has a non-empty set.
var rolePermissions = map[model.Role][]Permission{
	model.RoleSupplier: {
		ProductView, ProductCreate, ProductEdit, ProductDelete,
		ProductOrderView,
	},
	model.RoleUser: {
		ProductView,
		OrderCreate, OrderView, OrderDelete,
	},
}

// Checker answers permission checks for whoever the session says is
// signed in. An unauthenticated viewer holds no permissions.
type Checker struct {
	session *session.Session
}

// NewChecker returns a checker bound to the given session.
func NewChecker(sess *session.Session) *Checker {
	return &Checker{session: sess}
}

// Has reports whether the current user's role grants p.
func (c *Checker) Has(p Permission) bool {
	user := c.session.User()
	if user == nil {
		return false
	}
	for _, granted := range rolePermissions[user.Role] {
		if granted == p {
			return true
		}
	}
	return false
}

// HasAny reports whether the current user holds at least one of ps.
func (c *Checker) HasAny(ps ...Permission) bool {
	for _, p := range ps {
		if c.Has(p) {
			return true
		}
	}
	return false
}

// HasAll reports whether the current user holds every one of ps.
func (c *Checker) HasAll(ps ...Permission) bool {
	for _, p := range ps {
		if !c.Has(p) {
			return false
		}
	}
	return true
}

// HasRole reports whether the current user's role is exactly role.
// Substring matching is deliberately not used; a role string that
// happens to contain another role's name must not match it.
func (c *Checker) HasRole(role model.Role) bool {
	user := c.session.User()
	if user == nil {
		return false
	}
	return user.Role == role
}
