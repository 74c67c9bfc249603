package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/blissorganic/storefront/database"
	"github.com/blissorganic/storefront/models"
)

const (
	cartKey     = "cart"
	cartOpenKey = "cart_open"
)

// CartStore owns the visitor's pending line items. Product identifiers
// are unique across rows: adding an already-present product merges into
// the existing row. Quantity is always >= 1; an update below 1 removes
// the row. Every mutation is written through to storage before it is
// visible in memory.
type CartStore struct {
	mu    sync.Mutex
	kv    database.KV
	items []models.CartItem
	open  bool
}

func NewCartStore(kv database.KV) *CartStore {
	return &CartStore{kv: kv}
}

// Hydrate loads persisted line items. A corrupt record is discarded and
// the cart starts empty; this never fails outward.
func (c *CartStore) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if flag, err := c.kv.Get(ctx, cartOpenKey); err == nil {
		c.open = flag == "1"
	}

	raw, err := c.kv.Get(ctx, cartKey)
	if err != nil || raw == "" {
		return
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		c.kv.Delete(ctx, cartKey)
		return
	}
	c.items = cart.Items
}

// AddItem merges quantity into an existing row for the same product, or
// appends a new row snapshotting the product's display fields and price
// at add time. Non-positive quantities are rejected as a no-op.
func (c *CartStore) AddItem(ctx context.Context, p models.Product, quantity int) error {
	if quantity < 1 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			updated := cloneItems(c.items)
			updated[i].Quantity += quantity
			return c.persist(ctx, updated)
		}
	}

	updated := append(cloneItems(c.items), models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Unit:      p.Unit,
		Price:     p.Price,
		Quantity:  quantity,
	})
	return c.persist(ctx, updated)
}

// RemoveItem deletes the row for the product; absent rows are a no-op.
func (c *CartStore) RemoveItem(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}
	if len(updated) == len(c.items) {
		return nil
	}
	return c.persist(ctx, updated)
}

// UpdateQuantity sets the row's quantity exactly; anything below 1 is a
// removal request, matching the minus button in the cart panel.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return c.RemoveItem(ctx, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			updated := cloneItems(c.items)
			updated[i].Quantity = quantity
			return c.persist(ctx, updated)
		}
	}
	return nil
}

// Clear empties the cart; called after a successful checkout.
func (c *CartStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(ctx, cartKey); err != nil {
		return err
	}
	c.items = nil
	return nil
}

func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *CartStore) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Open, Close and IsOpen track whether the cart panel is presented.
// This is view state colocated here for convenience; it is kept under
// its own key, separate from the commerce data, and written
// best-effort.
func (c *CartStore) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.kv.Set(context.Background(), cartOpenKey, "1")
}

func (c *CartStore) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.kv.Set(context.Background(), cartOpenKey, "0")
}

func (c *CartStore) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// persist writes the new line items to storage first, then makes them
// visible in memory. Callers hold the lock.
func (c *CartStore) persist(ctx context.Context, items []models.CartItem) error {
	cart := models.Cart{Items: items, UpdatedAt: time.Now()}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := c.kv.Set(ctx, cartKey, string(data)); err != nil {
		return err
	}
	c.items = items
	return nil
}

func cloneItems(items []models.CartItem) []models.CartItem {
	if items == nil {
		return nil
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
