package cart

import (
	"fmt"

	"github.com/rs/zerolog"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

// AdoptAnonymous folds the anonymous cart into user's cart after sign
// in, so products picked before authenticating are not lost. Items for
// a product already in the user's cart merge under the usual clamp
// rules. The anonymous cart is emptied afterwards.
func AdoptAnonymous(storage *localstore.Store, user *model.User, logger zerolog.Logger) error {
	if user == nil {
		return nil
	}

	anon, err := NewStore(storage, Key(nil), logger)
	if err != nil {
		return fmt.Errorf("failed to open anonymous cart: %w", err)
	}

	items := anon.Items()
	if len(items) == 0 {
		return nil
	}

	mine, err := NewStore(storage, Key(user), logger)
	if err != nil {
		return fmt.Errorf("failed to open user cart: %w", err)
	}

	for _, item := range items {
		if _, err := mine.AddToCart(item.Product, item.Quantity); err != nil {
			return fmt.Errorf("failed to adopt cart item: %w", err)
		}
	}

	if err := anon.Clear(); err != nil {
		return fmt.Errorf("failed to clear anonymous cart: %w", err)
	}

	logger.Info().
		Int("user_id", user.ID).
		Int("items", len(items)).
		Msg("anonymous cart adopted")

	return nil
}
