// Package slot stores whole-cart snapshots under a single key, the way a
// browser keeps one localStorage entry per cart.
package slot

import (
	"context"
	"errors"
	"fmt"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
)

// DefaultKey is the slot name the storefront client has always used.
const DefaultKey = "@cartData"

var ErrNotFound = errors.New("slot is empty")

// Store is a byte-level key-value slot. Put always overwrites the full value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// SessionKey derives the slot key of one session's cart.
func SessionKey(base, sessionID string) string {
	if base == "" {
		base = DefaultKey
	}
	return base + ":" + sessionID
}

// CartRepository adapts a Store to domcart.Repository using the JSON codec.
type CartRepository struct {
	store Store
	key   string
}

func NewCartRepository(store Store, key string) *CartRepository {
	return &CartRepository{store: store, key: key}
}

func (r *CartRepository) Load(ctx context.Context) (domcart.Cart, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return domcart.Cart{Items: []domcart.Entry{}}, nil
	}
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("read slot %q: %w", r.key, err)
	}
	c, err := domcart.Decode(data)
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("decode slot %q: %w", r.key, err)
	}
	return c, nil
}

func (r *CartRepository) Save(ctx context.Context, c domcart.Cart) error {
	data, err := domcart.Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", r.key, err)
	}
	return nil
}
