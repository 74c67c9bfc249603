package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blissorganic/storefront/database"
	"github.com/blissorganic/storefront/models"
)

var (
	apples  = models.Product{ID: "p1", Name: "Organic Apples", Image: "apples.jpg", Unit: "kg", Price: 100}
	honey   = models.Product{ID: "p2", Name: "Raw Honey", Image: "honey.jpg", Unit: "jar", Price: 50}
	almonds = models.Product{ID: "p3", Name: "Almonds", Image: "almonds.jpg", Unit: "kg", Price: 700}
)

func newTestCart(t *testing.T) (*CartStore, database.KV) {
	t.Helper()
	kv := database.NewMemoryKV()
	cart := NewCartStore(kv)
	cart.Hydrate(context.Background())
	return cart, kv
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges Quantity For Same Product", func(t *testing.T) {
		cart, _ := newTestCart(t)

		assert.NoError(t, cart.AddItem(ctx, apples, 2))
		assert.NoError(t, cart.AddItem(ctx, apples, 3))

		items := cart.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("Snapshots Price At Add Time", func(t *testing.T) {
		cart, _ := newTestCart(t)

		assert.NoError(t, cart.AddItem(ctx, apples, 1))

		repriced := apples
		repriced.Price = 120
		assert.NoError(t, cart.AddItem(ctx, repriced, 1))

		// The existing row keeps the price captured at first add.
		items := cart.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, 100.0, items[0].Price)
	})

	t.Run("Rejects Non-Positive Quantity", func(t *testing.T) {
		cart, _ := newTestCart(t)

		assert.NoError(t, cart.AddItem(ctx, apples, 0))
		assert.NoError(t, cart.AddItem(ctx, apples, -2))

		assert.Empty(t, cart.Items())
	})
}

func TestCartTotals(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	assert.NoError(t, cart.AddItem(ctx, apples, 2))
	assert.NoError(t, cart.AddItem(ctx, honey, 1))

	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, 250.0, cart.TotalPrice())
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets Quantity Exactly", func(t *testing.T) {
		cart, _ := newTestCart(t)
		assert.NoError(t, cart.AddItem(ctx, apples, 2))

		assert.NoError(t, cart.UpdateQuantity(ctx, "p1", 7))

		assert.Equal(t, 7, cart.TotalItems())
	})

	t.Run("Zero Removes The Row", func(t *testing.T) {
		cart, _ := newTestCart(t)
		assert.NoError(t, cart.AddItem(ctx, apples, 2))

		assert.NoError(t, cart.UpdateQuantity(ctx, "p1", 0))

		assert.Empty(t, cart.Items())
	})

	t.Run("Negative Removes The Row", func(t *testing.T) {
		cart, _ := newTestCart(t)
		assert.NoError(t, cart.AddItem(ctx, apples, 2))

		assert.NoError(t, cart.UpdateQuantity(ctx, "p1", -1))

		assert.Empty(t, cart.Items())
	})

	t.Run("Unknown Product Is A No-Op", func(t *testing.T) {
		cart, _ := newTestCart(t)
		assert.NoError(t, cart.AddItem(ctx, apples, 2))

		assert.NoError(t, cart.UpdateQuantity(ctx, "missing", 5))

		assert.Equal(t, 2, cart.TotalItems())
	})
}

func TestCartRemoveItem(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	assert.NoError(t, cart.AddItem(ctx, apples, 2))
	assert.NoError(t, cart.AddItem(ctx, honey, 1))

	assert.NoError(t, cart.RemoveItem(ctx, "p1"))
	assert.Len(t, cart.Items(), 1)

	// Absent product is not an error.
	assert.NoError(t, cart.RemoveItem(ctx, "p1"))
	assert.Len(t, cart.Items(), 1)
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	cart, kv := newTestCart(t)

	assert.NoError(t, cart.AddItem(ctx, apples, 2))
	assert.NoError(t, cart.AddItem(ctx, almonds, 4))

	assert.NoError(t, cart.Clear(ctx))

	assert.Equal(t, 0, cart.TotalItems())
	assert.Equal(t, 0.0, cart.TotalPrice())

	_, err := kv.Get(ctx, "cart")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCartPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("Survives Rehydration", func(t *testing.T) {
		kv := database.NewMemoryKV()

		cart := NewCartStore(kv)
		cart.Hydrate(ctx)
		assert.NoError(t, cart.AddItem(ctx, apples, 2))
		assert.NoError(t, cart.AddItem(ctx, honey, 1))

		reloaded := NewCartStore(kv)
		reloaded.Hydrate(ctx)

		assert.Equal(t, 3, reloaded.TotalItems())
		assert.Equal(t, 250.0, reloaded.TotalPrice())
	})

	t.Run("Corrupt Record Resets Silently", func(t *testing.T) {
		kv := database.NewMemoryKV()
		assert.NoError(t, kv.Set(ctx, "cart", "{not json"))

		cart := NewCartStore(kv)
		cart.Hydrate(ctx)

		assert.Empty(t, cart.Items())
		_, err := kv.Get(ctx, "cart")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestCartPanelFlag(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV()

	cart := NewCartStore(kv)
	cart.Hydrate(ctx)
	assert.False(t, cart.IsOpen())

	cart.Open()
	assert.True(t, cart.IsOpen())

	reloaded := NewCartStore(kv)
	reloaded.Hydrate(ctx)
	assert.True(t, reloaded.IsOpen())

	reloaded.Close()
	assert.False(t, reloaded.IsOpen())
}
