package model

import "time"

// OrderStatus is the fulfilment status of a submitted order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been created but not yet paid.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaid indicates payment has been received.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusShipped indicates the order has left the supplier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusCompleted indicates the order is fully processed.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// Order represents a submitted, server-persisted purchase. The client
// holds a read-mostly copy; only Status ever changes after a confirmed
// update.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Price     string      `json:"price"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Items     []OrderItem `json:"order_items"`
}

// OrderItem is a line item in an order. Price is the unit price frozen
// at order time, independent of the product's current price.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     string  `json:"price"`
	Product   Product `json:"product"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}
