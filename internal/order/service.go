package order

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/permission"
	"storefront/internal/session"
)

// Gateway is the backend surface the service needs. Satisfied by
// *api.Client.
type Gateway interface {
	Orders(ctx context.Context) ([]model.Order, error)
	SupplierOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

// Service exposes order operations for the current viewer. Every
// mutating call is validated against the transition table and the
// viewer's permissions before any network call is issued; the server
// stays authoritative, the client just never submits an invalid
// request.
type Service struct {
	gateway Gateway
	session *session.Session
	perms   *permission.Checker
	logger  zerolog.Logger
}

// NewService creates a new order service.
func NewService(gateway Gateway, sess *session.Session, perms *permission.Checker, logger zerolog.Logger) *Service {
	return &Service{
		gateway: gateway,
		session: sess,
		perms:   perms,
		logger:  logger.With().Str("service", "order").Logger(),
	}
}

// Mine retrieves the signed-in buyer's orders.
func (s *Service) Mine(ctx context.Context) ([]model.Order, error) {
	if !s.perms.Has(permission.OrderView) {
		return nil, model.ErrForbidden
	}

	orders, err := s.gateway.Orders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ForSupplier retrieves orders containing the supplier's products.
func (s *Service) ForSupplier(ctx context.Context) ([]model.Order, error) {
	if !s.perms.Has(permission.ProductOrderView) {
		return nil, model.ErrForbidden
	}

	orders, err := s.gateway.SupplierOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list supplier orders")
		return nil, fmt.Errorf("failed to list supplier orders: %w", err)
	}
	return orders, nil
}

// SupplierTransitions returns the status changes the current viewer
// may offer for ord: the transition table filtered down to viewers
// holding the supplier role with a product in the order. Everyone
// else gets an empty set, so the UI never renders a control the
// viewer cannot use.
func (s *Service) SupplierTransitions(ord model.Order) []model.OrderStatus {
	if !s.canFulfil(ord) {
		return nil
	}
	return AvailableTransitions(ord.Status)
}

// UpdateStatus moves ord to next on behalf of the supplier. The
// returned order carries the confirmed status; ord itself is left
// untouched so a failed call changes nothing locally.
func (s *Service) UpdateStatus(ctx context.Context, ord model.Order, next model.OrderStatus) (*model.Order, error) {
	if !s.canFulfil(ord) {
		s.logger.Warn().Int("order_id", ord.ID).Msg("status update denied")
		return nil, model.ErrForbidden
	}

	if !CanTransition(ord.Status, next) {
		s.logger.Warn().
			Int("order_id", ord.ID).
			Str("from", ord.Status.String()).
			Str("to", next.String()).
			Msg("rejected invalid status transition")
		return nil, model.ErrInvalidTransition
	}

	updated, err := s.gateway.UpdateOrderStatus(ctx, ord.ID, next)
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", ord.ID).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Int("order_id", ord.ID).
		Str("status", updated.Status.String()).
		Msg("order status updated")

	return updated, nil
}

// Cancel cancels ord on behalf of the buyer. Only the owning buyer
// may cancel, and only while the order is still pending.
func (s *Service) Cancel(ctx context.Context, ord model.Order) error {
	user := s.session.User()
	if user == nil || !s.perms.Has(permission.OrderDelete) || ord.UserID != user.ID {
		s.logger.Warn().Int("order_id", ord.ID).Msg("cancel denied")
		return model.ErrForbidden
	}

	if ord.Status != model.OrderStatusPending {
		return model.ErrOrderNotCancelable
	}

	if err := s.gateway.DeleteOrder(ctx, ord.ID); err != nil {
		s.logger.Error().Err(err).Int("order_id", ord.ID).Msg("failed to cancel order")
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info().Int("order_id", ord.ID).Msg("order cancelled")
	return nil
}

// canFulfil reports whether the current viewer is a supplier with a
// product in ord.
func (s *Service) canFulfil(ord model.Order) bool {
	user := s.session.User()
	if user == nil || !s.perms.HasRole(model.RoleSupplier) || !s.perms.Has(permission.ProductOrderView) {
		return false
	}
	for _, item := range ord.Items {
		if item.Product.UserID == user.ID {
			return true
		}
	}
	return false
}
