// Package cart is the client-side shopping cart: an ordered set of line items
// keyed by product id, bounded by the stock recorded when each product was
// first added, persisted as a JSON array under StorageKey.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/storage"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
)

// StorageKey is the only key the cart reads or writes.
const StorageKey = "ecommerce_cart"

// TaxRate is applied to the subtotal (18% GST).
const TaxRate = 0.18

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrExceedsStock    = errors.New("exceeds stock")
)

// LineItem is one product in the cart. Stock is the ceiling captured when
// the product was first added; 1 <= Quantity <= Stock.
type LineItem struct {
	ID       models.ID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Image    string    `json:"image,omitempty"`
	Stock    int       `json:"stock"`
	Quantity int       `json:"quantity"`
}

// LineTotal is Price×Quantity rounded to cents.
func (li LineItem) LineTotal() float64 {
	return roundCents(li.Price * float64(li.Quantity))
}

// AtStockLimit reports whether no more units can be added.
func (li LineItem) AtStockLimit() bool {
	return li.Quantity >= li.Stock
}

type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

type Engine struct {
	store storage.Store
	log   logging.Logger

	mu    sync.Mutex
	items []LineItem
	open  bool
}

type Option func(*Engine)

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.log = l.With("component", "cart") }
}

// New returns an empty, closed cart. Call Load to restore a saved one.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{store: store, log: logging.Discard()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load replaces the in-memory items with the persisted cart. A missing or
// empty blob gives an empty cart. A blob that does not parse, or that breaks
// the line-item invariants, also gives an empty cart and is removed from
// storage.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil

	raw, ok, err := e.store.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		e.discardLocked(ctx, err)
		return
	case err != nil:
		e.log.Warn(ctx, "cart storage read failed", "err", err)
		return
	case !ok || raw == "":
		return
	}

	items, err := decodeItems(raw)
	if err != nil {
		e.discardLocked(ctx, err)
		return
	}
	e.items = items
	e.log.Debug(ctx, "cart restored", "items", len(items))
}

func decodeItems(raw string) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	seen := make(map[models.ID]bool, len(items))
	for _, it := range items {
		if it.ID.IsZero() {
			return nil, errors.New("line item without id")
		}
		if it.Quantity < 1 || (it.Stock > 0 && it.Quantity > it.Stock) {
			return nil, fmt.Errorf("line item %s: quantity %d, stock %d", it.ID, it.Quantity, it.Stock)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate line item %s", it.ID)
		}
		seen[it.ID] = true
	}
	return items, nil
}

func (e *Engine) discardLocked(ctx context.Context, cause error) {
	e.log.Warn(ctx, "discarding corrupt cart", "err", cause)
	if err := e.store.Remove(ctx, StorageKey); err != nil {
		e.log.Error(ctx, "remove corrupt cart failed", "err", err)
	}
}

// persistLocked writes the whole collection. Failures are logged only.
func (e *Engine) persistLocked(ctx context.Context) {
	items := e.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		e.log.Error(ctx, "encode cart failed", "err", err)
		return
	}
	if err := e.store.Set(ctx, StorageKey, string(raw)); err != nil {
		e.log.Error(ctx, "persist cart failed", "err", err)
	}
}

func (e *Engine) indexLocked(id models.ID) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddToCart adds quantity units of p. A product already in the cart may grow
// only up to the stock captured when it was first added; a new product only
// up to p.Stock. The cart is unchanged whenever an error is returned.
func (e *Engine) AddToCart(ctx context.Context, p models.Product, quantity int) error {
	if p.ID.IsZero() {
		return ErrInvalidProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.indexLocked(p.ID); i >= 0 {
		it := &e.items[i]
		if quantity > it.Stock-it.Quantity {
			return ErrExceedsStock
		}
		it.Quantity += quantity
		e.persistLocked(ctx)
		return nil
	}

	if quantity > p.Stock {
		return ErrExceedsStock
	}
	e.items = append(e.items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Stock:    p.Stock,
		Quantity: quantity,
	})
	e.persistLocked(ctx)
	return nil
}

// RemoveFromCart drops the item; an absent id is a no-op.
func (e *Engine) RemoveFromCart(ctx context.Context, id models.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(ctx, id)
}

func (e *Engine) removeLocked(ctx context.Context, id models.ID) {
	i := e.indexLocked(id)
	if i < 0 {
		return
	}
	e.items = append(e.items[:i:i], e.items[i+1:]...)
	e.persistLocked(ctx)
}

// UpdateQuantity sets the item's quantity, clamped to its stock. A quantity
// below 1 removes the item. Unlike AddToCart an over-stock request is not
// rejected. Items without a recorded stock are not clamped.
func (e *Engine) UpdateQuantity(ctx context.Context, id models.ID, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity < 1 {
		e.removeLocked(ctx, id)
		return
	}

	i := e.indexLocked(id)
	if i < 0 {
		return
	}
	if stock := e.items[i].Stock; stock > 0 && quantity > stock {
		quantity = stock
	}
	if e.items[i].Quantity == quantity {
		return
	}
	e.items[i].Quantity = quantity
	e.persistLocked(ctx)
}

func (e *Engine) ClearCart(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.persistLocked(ctx)
}

// CartTotal computes subtotal, tax at TaxRate and total, each rounded half
// away from zero to cents.
func (e *Engine) CartTotal() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()

	var subtotal float64
	for _, it := range e.items {
		subtotal += it.Price * float64(it.Quantity)
	}
	tax := subtotal * TaxRate

	return Totals{
		Subtotal:  roundCents(subtotal),
		Tax:       roundCents(tax),
		Total:     roundCents(subtotal + tax),
		ItemCount: e.countLocked(),
	}
}

// ItemCount is the total number of units, for the cart badge.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.countLocked()
}

func (e *Engine) countLocked() int {
	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

// CanAddToCart reports whether quantity more units fit under the item's
// stock. Products not yet in the cart always report true.
func (e *Engine) CanAddToCart(id models.ID, quantity int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return quantity <= e.items[i].Stock-e.items[i].Quantity
	}
	return true
}

// CartItemQuantity returns the quantity held for id, 0 if absent.
func (e *Engine) CartItemQuantity(id models.ID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return e.items[i].Quantity
	}
	return 0
}

// Items returns a copy of the line items in insertion order.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *Engine) ToggleCart() {
	e.mu.Lock()
	e.open = !e.open
	e.mu.Unlock()
}

func (e *Engine) OpenCart() {
	e.mu.Lock()
	e.open = true
	e.mu.Unlock()
}

func (e *Engine) CloseCart() {
	e.mu.Lock()
	e.open = false
	e.mu.Unlock()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
