// Package cart owns the shopping cart: the single mutable collection of
// lines shared by every view, its derived totals, and its persistence.
// All mutation funnels through the Aggregator; views only read snapshots.
package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/diyeddin/delivery-ui/internal/storage"
	"go.uber.org/zap"
)

// Aggregator holds the cart lines in insertion order plus the drawer
// visibility flag. Lines persist on every mutation; the drawer flag is
// UI-only and never persisted.
type Aggregator struct {
	mu         sync.RWMutex
	lines      []domain.CartLine
	drawerOpen bool

	store  storage.Store
	logger *zap.Logger
}

// New hydrates the cart from storage. A missing or unreadable payload
// starts the cart empty rather than failing.
func New(store storage.Store, logger *zap.Logger) *Aggregator {
	a := &Aggregator{store: store, logger: logger}

	data, err := store.Get(storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to load saved cart, starting empty", zap.Error(err))
		}
		return a
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("saved cart is malformed, starting empty", zap.Error(err))
		return a
	}

	// Drop lines a stale or hand-edited file could carry that would break
	// the cart invariants.
	for _, l := range lines {
		if l.Quantity >= 1 {
			a.lines = append(a.lines, l)
		}
	}
	return a
}

// AddItem merges the candidate line into the cart: an existing line for the
// same product gains its quantity, otherwise the line is appended. Adding
// surfaces the cart by opening the drawer.
func (a *Aggregator) AddItem(line domain.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	merged := false
	for i := range a.lines {
		if a.lines[i].ProductID == line.ProductID {
			a.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		a.lines = append(a.lines, line)
	}

	a.drawerOpen = true
	a.persistLocked()
}

// RemoveItem drops the product's line entirely. Removing an absent product
// is a no-op, not an error.
func (a *Aggregator) RemoveItem(productID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.lines[:0]
	for _, l := range a.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	a.lines = kept
	a.persistLocked()
}

// UpdateQuantity replaces the line's quantity. A quantity below 1 removes
// the line instead; the cart never holds a zero-quantity line.
func (a *Aggregator) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		a.RemoveItem(productID)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.lines {
		if a.lines[i].ProductID == productID {
			a.lines[i].Quantity = quantity
			break
		}
	}
	a.persistLocked()
}

// Clear empties the cart. Called after the backend acknowledges an order.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lines = nil
	a.persistLocked()
}

// Total is the sum of price x quantity over all lines.
func (a *Aggregator) Total() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var total float64
	for _, l := range a.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, the number the navbar badge shows.
func (a *Aggregator) ItemCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for _, l := range a.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a copy of the cart in insertion order.
func (a *Aggregator) Lines() []domain.CartLine {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.CartLine, len(a.lines))
	copy(out, a.lines)
	return out
}

// StoreGroup is one store's slice of the cart, for grouped display.
type StoreGroup struct {
	StoreName string
	Lines     []domain.CartLine
}

// GroupByStore partitions the cart by store name, preserving first-seen
// store order and in-store insertion order. Presentation only; the cart
// itself stays a flat sequence.
func (a *Aggregator) GroupByStore() []StoreGroup {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var groups []StoreGroup
	index := make(map[string]int)
	for _, l := range a.lines {
		i, seen := index[l.StoreName]
		if !seen {
			i = len(groups)
			index[l.StoreName] = i
			groups = append(groups, StoreGroup{StoreName: l.StoreName})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}
	return groups
}

// SetDrawerOpen toggles the cart drawer. Pure UI state.
func (a *Aggregator) SetDrawerOpen(open bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.drawerOpen = open
}

func (a *Aggregator) DrawerOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.drawerOpen
}

// persistLocked writes the full collection back to storage. Callers hold
// the write lock. A storage failure is logged and swallowed; the in-memory
// cart is already updated and must stay intact.
func (a *Aggregator) persistLocked() {
	data, err := json.Marshal(a.lines)
	if err != nil {
		a.logger.Warn("failed to encode cart", zap.Error(err))
		return
	}
	if err := a.store.Set(storage.KeyCart, data); err != nil {
		a.logger.Warn("failed to persist cart", zap.Error(err))
	}
}
