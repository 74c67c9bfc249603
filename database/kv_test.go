package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Set(ctx, "token", "abc"))
	val, err := kv.Get(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, "abc", val)

	assert.NoError(t, kv.Delete(ctx, "token"))
	_, err = kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, kv.Delete(ctx, "token"))
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryKV()

	a := Namespace(base, "visitor:a:")
	b := Namespace(base, "visitor:b:")

	assert.NoError(t, a.Set(ctx, "token", "tok-a"))
	assert.NoError(t, b.Set(ctx, "token", "tok-b"))

	valA, err := a.Get(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, "tok-a", valA)

	valB, err := b.Get(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, "tok-b", valB)

	// The underlying store sees the prefixed keys.
	raw, err := base.Get(ctx, "visitor:a:token")
	assert.NoError(t, err)
	assert.Equal(t, "tok-a", raw)

	assert.NoError(t, a.Delete(ctx, "token"))
	_, err = a.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	valB, err = b.Get(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, "tok-b", valB)
}
