package stores

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"artizon/internal/models"
	"artizon/internal/storage"
)

// cartKey is the persisted cart key. The cart store is the only component
// that writes or clears it.
const cartKey = "cart"

// CartStore maintains the locally persisted list of cart line items. Every
// mutation persists the full snapshot synchronously, so in-memory and
// persisted state are never observably out of sync.
type CartStore struct {
	store storage.Store

	mu    sync.Mutex
	items []models.CartItem
}

// NewCartStore creates a CartStore and loads the persisted cart. A corrupt
// persisted snapshot is logged and discarded rather than wedging startup.
func NewCartStore(store storage.Store) (*CartStore, error) {
	raw, ok, err := store.Get(cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted cart: %w", err)
	}

	var items []models.CartItem
	if ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Printf("Discarding unreadable persisted cart: %v", err)
			items = nil
		}
	}
	return &CartStore{
		store: store,
		items: items,
	}, nil
}

// Add puts one unit of the product in the cart. If a line with the same ID
// already exists its quantity is incremented instead of adding a duplicate
// line; a stored quantity below 1 counts as 1 before the increment.
func (s *CartStore) Add(item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			quantity := s.items[i].Quantity
			if quantity < 1 {
				quantity = 1
			}
			s.items[i].Quantity = quantity + 1
			return s.persistLocked()
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	return s.persistLocked()
}

// Remove drops the line with the given product ID.
func (s *CartStore) Remove(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	return s.persistLocked()
}

// UpdateQuantity sets the quantity of the line with the given product ID,
// clamped to a minimum of 1. Unknown IDs are a no-op.
func (s *CartStore) UpdateQuantity(id uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			if quantity < 1 {
				quantity = 1
			}
			s.items[i].Quantity = quantity
			return s.persistLocked()
		}
	}
	return nil
}

// Clear empties the cart and removes the persisted snapshot entirely.
func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.store.Delete(cartKey); err != nil {
		return fmt.Errorf("failed to remove persisted cart: %w", err)
	}
	return nil
}

// Items returns a copy of the current line items.
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of price times quantity over all lines, recomputed on read.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines, recomputed on read.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persistLocked writes the full snapshot. Callers hold the mutex.
func (s *CartStore) persistLocked() error {
	encoded, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(cartKey, string(encoded)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
