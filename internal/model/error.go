package model

// Standard error codes surfaced to the UI layer.
const (
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeItemBusy           = "ITEM_BUSY"
	ErrCodeCheckoutInFlight   = "CHECKOUT_IN_FLIGHT"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeSessionExpired     = "SESSION_EXPIRED"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotCancelable = "ORDER_NOT_CANCELABLE"
)

// DomainError is a recoverable, user-visible error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Validation errors are raised before any network
// call; authorization errors are defensive denials of actions the UI
// should not have offered.
var (
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be between 1 and 99")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrItemBusy           = NewDomainError(ErrCodeItemBusy, "Another operation on this item is still in progress")
	ErrCheckoutInFlight   = NewDomainError(ErrCodeCheckoutInFlight, "A checkout is already in progress")
	ErrInvalidTransition  = NewDomainError(ErrCodeInvalidTransition, "Order status transition not allowed")
	ErrNotAuthenticated   = NewDomainError(ErrCodeNotAuthenticated, "Sign in to continue")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "You do not have permission to perform this action")
	ErrSessionExpired     = NewDomainError(ErrCodeSessionExpired, "Session expired, sign in again")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotCancelable = NewDomainError(ErrCodeOrderNotCancelable, "Only pending orders can be cancelled")
)
