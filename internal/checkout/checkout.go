// Package checkout owns the cart→order handoff: it converts the cart
// snapshot into an order-creation request, submits it once, and clears
// the cart only after the backend confirms.
package checkout

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/session"
)

// OrderCreator is the single backend call checkout needs. Satisfied by
// *api.Client.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req model.OrderRequest, idempotencyKey string) (*model.Order, error)
}

// Orchestrator submits the cart as an order. One submission is allowed
// in flight at a time; a second call while the first is unresolved
// fails fast without a network call. There is no retry here — a retry
// is a fresh user-initiated checkout.
type Orchestrator struct {
	cart     *cart.Store
	orders   OrderCreator
	session  *session.Session
	logger   zerolog.Logger
	inFlight atomic.Bool
}

// New creates a new checkout orchestrator.
func New(cartStore *cart.Store, orders OrderCreator, sess *session.Session, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cart:    cartStore,
		orders:  orders,
		session: sess,
		logger:  logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout submits the current cart. Preconditions fail before any
// network call: an unauthenticated viewer gets ErrNotAuthenticated
// (the redirect-to-login signal) and an empty cart gets ErrEmptyCart.
// On success the cart is cleared and the created order returned; on
// failure the cart is left exactly as it was.
func (o *Orchestrator) Checkout(ctx context.Context) (*model.Order, error) {
	if !o.session.Authenticated() {
		return nil, model.ErrNotAuthenticated
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if !o.inFlight.CompareAndSwap(false, true) {
		o.logger.Debug().Msg("checkout already in flight")
		return nil, model.ErrCheckoutInFlight
	}
	defer o.inFlight.Store(false)

	req := model.OrderRequest{
		Items: make([]model.OrderItemRequest, len(items)),
	}
	for i, item := range items {
		req.Items[i] = model.OrderItemRequest{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}

	// One key per attempt: a repeated submission of this attempt can
	// not create a duplicate order server-side.
	key := uuid.NewString()

	order, err := o.orders.CreateOrder(ctx, req, key)
	if err != nil {
		o.logger.Error().Err(err).Int("items", len(items)).Msg("checkout failed")
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	// The order exists either way now. A failed clear leaves a stale
	// cart behind; there is no transaction spanning both steps, so
	// log it and return the order.
	if err := o.cart.Clear(); err != nil {
		o.logger.Error().
			Err(err).
			Int("order_id", order.ID).
			Msg("order placed but cart clear failed, cart left non-empty")
	}

	o.logger.Info().
		Int("order_id", order.ID).
		Str("status", order.Status.String()).
		Int("items", len(items)).
		Msg("checkout completed")

	return order, nil
}

// InFlight reports whether a checkout is currently unresolved.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}
