// Package cart owns the buyer's pending selection: an ordered list of
// cart items, mutated only through the store and mirrored to durable
// client-side storage on every change.
package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

// Quantity bounds for a single cart item. Adds beyond MaxQuantity are
// clamped, with the excess discarded.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Key returns the storage key for a user's cart. Carts are namespaced
// per user so switching accounts on the same machine never leaks a
// previous user's cart; the anonymous cart has its own key.
func Key(user *model.User) string {
	if user == nil {
		return "cart:anon"
	}
	return fmt.Sprintf("cart:u%d", user.ID)
}

// Store holds the cart for one storage key. All mutations persist the
// full snapshot synchronously before returning. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	items   []model.CartItem
	storage *localstore.Store
	key     string
	logger  zerolog.Logger
}

// NewStore rehydrates the cart stored under key. Absent or malformed
// persisted state yields an empty cart.
func NewStore(storage *localstore.Store, key string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		storage: storage,
		key:     key,
		logger:  logger.With().Str("component", "cart").Logger(),
	}

	var items []model.CartItem
	ok, err := storage.Get(key, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if ok {
		s.items = items
		s.logger.Debug().Int("items", len(items)).Msg("cart rehydrated")
	}

	return s, nil
}

// AddToCart inserts a new item for product, or merges into the existing
// item when the product is already in the cart. Quantities clamp to
// MaxQuantity; the excess is discarded rather than erroring.
func (s *Store) AddToCart(product model.Product, quantity int) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, model.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			next := s.items[i].Quantity + quantity
			if next > MaxQuantity {
				s.logger.Debug().
					Int("product_id", product.ID).
					Int("requested", next).
					Msg("quantity clamped")
				next = MaxQuantity
			}
			s.items[i].Quantity = next
			if err := s.persist(); err != nil {
				return model.CartItem{}, err
			}
			return s.items[i], nil
		}
	}

	item := model.CartItem{
		ID:       uuid.NewString(),
		Product:  product,
		Quantity: min(quantity, MaxQuantity),
	}
	s.items = append(s.items, item)
	if err := s.persist(); err != nil {
		return model.CartItem{}, err
	}

	s.logger.Debug().
		Str("item_id", item.ID).
		Int("product_id", product.ID).
		Int("quantity", item.Quantity).
		Msg("item added to cart")

	return item, nil
}

// UpdateQuantity sets the quantity of an item in place, preserving
// order. A quantity of zero or less removes the item. Values above
// MaxQuantity are clamped. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(itemID)
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}

	return nil
}

// RemoveFromCart deletes the item with the given id. Absent ids are a
// no-op, not an error.
func (s *Store) RemoveFromCart(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}

	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist()
}

// Items returns a copy of the cart contents in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Item returns the item with the given id.
func (s *Store) Item(itemID string) (model.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return model.CartItem{}, false
}

// Total returns Σ(price × quantity) across the cart, computed in
// decimal arithmetic so string prices like "19.99" sum to the cent.
func (s *Store) Total() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		price, err := decimal.NewFromString(item.Product.Price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %q for product %d: %w", item.Product.Price, item.Product.ID, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total, nil
}

// Count returns the sum of quantities across the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persist mirrors the full cart snapshot to durable storage. Callers
// must hold s.mu.
func (s *Store) persist() error {
	items := s.items
	if items == nil {
		items = []model.CartItem{}
	}
	if err := s.storage.Put(s.key, items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
