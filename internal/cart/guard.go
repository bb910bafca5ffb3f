package cart

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// recentTTL is how long an item keeps its "recently updated" marker.
// The marker is UI feedback only and carries no correctness weight.
const recentTTL = 1500 * time.Millisecond

// Guard wraps store mutations for interactive use. It validates
// quantity targets before touching the store, serializes operations
// per item with an in-flight marker, and tracks transient
// recently-updated markers. Operations on distinct items never block
// each other.
type Guard struct {
	store  *Store
	logger zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
	recent   map[string]time.Time

	now func() time.Time
}

// NewGuard returns a guard over store.
func NewGuard(store *Store, logger zerolog.Logger) *Guard {
	return &Guard{
		store:    store,
		logger:   logger.With().Str("component", "cart_guard").Logger(),
		inFlight: make(map[string]struct{}),
		recent:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// UpdateQuantity validates the target quantity, then updates the item
// under its in-flight marker. The marker is cleared on every exit
// path. Success marks the item as recently updated.
func (g *Guard) UpdateQuantity(itemID string, quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		g.logger.Warn().
			Str("item_id", itemID).
			Int("quantity", quantity).
			Msg("rejected out-of-range quantity")
		return model.ErrInvalidQuantity
	}

	if err := g.acquire(itemID); err != nil {
		return err
	}
	defer g.release(itemID)

	if err := g.store.UpdateQuantity(itemID, quantity); err != nil {
		g.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to update quantity")
		return err
	}

	g.markRecent(itemID)
	return nil
}

// Remove deletes the item under its in-flight marker.
func (g *Guard) Remove(itemID string) error {
	if err := g.acquire(itemID); err != nil {
		return err
	}
	defer g.release(itemID)

	if err := g.store.RemoveFromCart(itemID); err != nil {
		g.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to remove item")
		return err
	}

	return nil
}

// InFlight reports whether an operation on the item is still pending;
// the UI disables that item's controls while it is.
func (g *Guard) InFlight(itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[itemID]
	return busy
}

// RecentlyUpdated reports whether the item changed within the last
// 1.5 seconds. Markers expire lazily.
func (g *Guard) RecentlyUpdated(itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	marked, ok := g.recent[itemID]
	if !ok {
		return false
	}
	if g.now().Sub(marked) >= recentTTL {
		delete(g.recent, itemID)
		return false
	}
	return true
}

// acquire marks the item in flight, failing if another operation on
// the same item has not yet resolved.
func (g *Guard) acquire(itemID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[itemID]; busy {
		g.logger.Debug().Str("item_id", itemID).Msg("operation already in flight")
		return model.ErrItemBusy
	}
	g.inFlight[itemID] = struct{}{}
	return nil
}

func (g *Guard) release(itemID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, itemID)
}

func (g *Guard) markRecent(itemID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recent[itemID] = g.now()
}
