// Package catalog exposes product operations for the current viewer,
// denying mutations the viewer's role does not permit before any
// request leaves the client.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/permission"
)

// Gateway is the backend surface the service needs. Satisfied by
// *api.Client.
type Gateway interface {
	Products(ctx context.Context) ([]model.Product, error)
	SupplierProducts(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int) (*model.Product, error)
	CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int, req model.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Service is the permission-gated product catalogue.
type Service struct {
	gateway Gateway
	perms   *permission.Checker
	logger  zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(gateway Gateway, perms *permission.Checker, logger zerolog.Logger) *Service {
	return &Service{
		gateway: gateway,
		perms:   perms,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

// Browse lists products for the current viewer: suppliers see their
// own listings, everyone else the full catalogue.
func (s *Service) Browse(ctx context.Context) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)
	if s.perms.HasRole(model.RoleSupplier) {
		products, err = s.gateway.SupplierProducts(ctx)
	} else {
		products, err = s.gateway.Products(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product.
func (s *Service) Get(ctx context.Context, id int) (*model.Product, error) {
	return s.gateway.Product(ctx, id)
}

// Create adds a listing. Requires product.create.
func (s *Service) Create(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	if !s.perms.Has(permission.ProductCreate) {
		s.logger.Warn().Msg("product create denied")
		return nil, model.ErrForbidden
	}
	return s.gateway.CreateProduct(ctx, req)
}

// Update edits a listing. Requires product.edit.
func (s *Service) Update(ctx context.Context, id int, req model.ProductRequest) (*model.Product, error) {
	if !s.perms.Has(permission.ProductEdit) {
		s.logger.Warn().Int("product_id", id).Msg("product edit denied")
		return nil, model.ErrForbidden
	}
	return s.gateway.UpdateProduct(ctx, id, req)
}

// Delete removes a listing. Requires product.delete.
func (s *Service) Delete(ctx context.Context, id int) error {
	if !s.perms.Has(permission.ProductDelete) {
		s.logger.Warn().Int("product_id", id).Msg("product delete denied")
		return model.ErrForbidden
	}
	return s.gateway.DeleteProduct(ctx, id)
}
