package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/model"
)

// CreateOrder submits an order for the given items. The idempotency
// key identifies one checkout attempt so a retried submission cannot
// create a duplicate order.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest, idempotencyKey string) (*model.Order, error) {
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", headers, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders retrieves the signed-in buyer's own orders.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SupplierOrders retrieves orders containing the signed-in supplier's
// products.
func (c *Client) SupplierOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/supplier/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to the given status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status model.OrderStatus) (*model.Order, error) {
	body := struct {
		Status model.OrderStatus `json:"status"`
	}{Status: status}

	var order model.Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/orders/%d", id), nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder cancels an order. The backend only accepts this while
// the order is still pending.
func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil, nil)
}
