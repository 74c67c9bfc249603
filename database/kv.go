package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("key not found")

// KV is the durable string-keyed storage the session and cart state is
// persisted to. Values are opaque strings; callers own the encoding.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type namespacedKV struct {
	kv     KV
	prefix string
}

// Namespace wraps a KV so every key is prefixed, letting each visitor's
// state live under its own keyspace while the stores keep using the
// plain keys "token", "user" and "cart".
func Namespace(kv KV, prefix string) KV {
	return &namespacedKV{kv: kv, prefix: prefix}
}

func (n *namespacedKV) Get(ctx context.Context, key string) (string, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespacedKV) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespacedKV) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
