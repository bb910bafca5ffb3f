package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/model"
)

// productsResponse is the listing envelope used by the backend.
type productsResponse struct {
	Products []model.Product `json:"products"`
}

// Products retrieves the full catalogue.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// SupplierProducts retrieves only the signed-in supplier's listings.
func (c *Client) SupplierProducts(ctx context.Context) ([]model.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/api/supplier/products", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Product retrieves a single product by id.
func (c *Client) Product(ctx context.Context, id int) (*model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &product)
	if err != nil {
		if apiErr, ok := err.(*Error); ok && apiErr.Status == http.StatusNotFound {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a listing.
func (c *Client) CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct edits a listing.
func (c *Client) UpdateProduct(ctx context.Context, id int, req model.ProductRequest) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d", id), nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a listing.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}
