// Package order models the client's view of submitted orders: the
// fixed graph of allowed status transitions and the operations a
// viewer may invoke on an order.
package order

import "storefront/internal/model"

// transitions is the full status graph. Terminal states have no entry.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:    {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped: {model.OrderStatusCompleted},
}

// AvailableTransitions returns the statuses reachable from s, in a
// stable order. Terminal and unknown statuses yield an empty set.
func AvailableTransitions(s model.OrderStatus) []model.OrderStatus {
	next := transitions[s]
	out := make([]model.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from → to is an allowed transition.
func CanTransition(from, to model.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outbound transitions.
func IsTerminal(s model.OrderStatus) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusShipped,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}

// StatusDisplay is the render mapping for one status.
type StatusDisplay struct {
	Label string
	Color string
}

var statusDisplays = map[model.OrderStatus]StatusDisplay{
	model.OrderStatusPending:   {Label: "Pending", Color: "yellow"},
	model.OrderStatusPaid:      {Label: "Paid", Color: "blue"},
	model.OrderStatusShipped:   {Label: "Shipped", Color: "purple"},
	model.OrderStatusCompleted: {Label: "Completed", Color: "green"},
	model.OrderStatusCancelled: {Label: "Cancelled", Color: "red"},
}

// Display returns the label/color mapping for s. Statuses outside the
// enum get a neutral "Unknown" fallback so a newer server value never
// breaks rendering.
func Display(s model.OrderStatus) StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return StatusDisplay{Label: "Unknown", Color: "gray"}
}
