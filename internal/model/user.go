package model

// Role classifies a user for permission derivation.
type Role string

const (
	// RoleUser is a buyer: browses products and places orders.
	RoleUser Role = "user"
	// RoleSupplier lists products and fulfils orders containing them.
	RoleSupplier Role = "supplier"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// User represents the authenticated viewer for the current session.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}
