// Package cart owns the mutable cart line-item list and the last-known
// server quantities. The store is the single writer: callers mutate through
// its methods, every mutation is snapshotted to local storage, and totals
// are always derived reads through the pricing engine.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adilzhan-dev/orda-storefront/internal/pricing"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/adilzhan-dev/orda-storefront/pkg/storage"
	"github.com/shopspring/decimal"
)

const stateKey = "cart:state"

type snapshot struct {
	Items         []LineItem    `json:"items"`
	APIQuantities APIQuantities `json:"api_quantities,omitempty"`
}

// Store holds the cart for the current session. Construct with NewStore;
// the zero value is not usable.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	apiQty    APIQuantities
	listeners []func()

	engine *pricing.Engine
	kv     storage.KV
	logg   *logger.Logger
}

// NewStore hydrates the store from local storage. A missing or corrupt
// snapshot starts the store empty; it never fails construction.
func NewStore(ctx context.Context, engine *pricing.Engine, kv storage.KV, logg *logger.Logger) *Store {
	s := &Store{
		apiQty: APIQuantities{},
		engine: engine,
		kv:     kv,
		logg:   logg,
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, found, err := s.kv.Get(ctx, stateKey)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart snapshot read failed, starting empty")
		}
		return
	}
	if !found {
		return
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		if s.logg != nil {
			s.logg.Debug(ctx, "discarding corrupt cart snapshot")
		}
		return
	}
	s.items = snap.Items
	if snap.APIQuantities != nil {
		s.apiQty = snap.APIQuantities
	}
}

// persist writes the snapshot best-effort; a storage failure keeps the
// in-memory state authoritative and never reaches the caller.
func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(snapshot{Items: s.items, APIQuantities: s.apiQty})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart snapshot marshal failed", err)
		}
		return
	}
	if err := s.kv.Set(ctx, stateKey, string(raw)); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart snapshot write failed, continuing in memory")
		}
	}
}

// Subscribe registers a change listener invoked after every mutation.
// Listeners run outside the store lock and must not mutate the store
// synchronously.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// SetItems replaces the whole line-item list, used after a server cart
// fetch or local hydration.
func (s *Store) SetItems(ctx context.Context, items []LineItem) {
	s.mu.Lock()
	s.items = append([]LineItem(nil), items...)
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// AddOrUpdateItem merges the incoming item into an existing line with the
// same (id, sizeId), adding its quantity, or appends a new line.
func (s *Store) AddOrUpdateItem(ctx context.Context, item LineItem) {
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].sameIdentity(item.ProductID, item.SizeID) {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// UpdateItemQuantity sets a line's quantity directly. A missing line is a
// no-op: this call never creates and never removes lines, callers clamp
// quantities to >= 1 before calling.
func (s *Store) UpdateItemQuantity(ctx context.Context, productID int64, quantity int, sizeID *int64) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].sameIdentity(productID, sizeID) {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		s.persist(ctx)
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveItem drops the line matching (id, sizeId), if present.
func (s *Store) RemoveItem(ctx context.Context, productID int64, sizeID *int64) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !item.sameIdentity(productID, sizeID) {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// SetAPIQuantities replaces the server-confirmed quantity map wholesale.
func (s *Store) SetAPIQuantities(ctx context.Context, quantities APIQuantities) {
	s.mu.Lock()
	s.apiQty = APIQuantities{}
	for k, v := range quantities {
		s.apiQty[k] = v
	}
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LineItem(nil), s.items...)
}

// APIQuantities returns a copy of the last server-confirmed quantities.
func (s *Store) APIQuantities() APIQuantities {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(APIQuantities, len(s.apiQty))
	for k, v := range s.apiQty {
		out[k] = v
	}
	return out
}

// TotalSum prices the whole cart through the pricing engine.
func (s *Store) TotalSum() decimal.Decimal {
	s.mu.Lock()
	lines := make([]pricing.Line, 0, len(s.items))
	for _, item := range s.items {
		lines = append(lines, item.pricingLine())
	}
	s.mu.Unlock()
	return s.engine.ComputeTotal(lines)
}

// LineDiscountedTotal exposes the per-line display approximation.
func (s *Store) LineDiscountedTotal(collectionSlug string, unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return s.engine.LineDiscountedTotal(collectionSlug, unitPrice, quantity)
}
