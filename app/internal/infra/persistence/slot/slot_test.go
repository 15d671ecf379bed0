package slot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

func sampleCart() domcart.Cart {
	return domcart.Cart{Items: []domcart.Entry{
		{Product: domproduct.Product{ID: 3, Name: "C", Price: decimal.RequireFromString("5.50")}, Amount: 2},
		{Product: domproduct.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10), Image: "a.png"}, Amount: 1},
	}}
}

func requireSameCart(t *testing.T, want, got domcart.Cart) {
	t.Helper()
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		require.Equal(t, want.Items[i].ID, got.Items[i].ID)
		require.Equal(t, want.Items[i].Name, got.Items[i].Name)
		require.Equal(t, want.Items[i].Image, got.Items[i].Image)
		require.Equal(t, want.Items[i].Amount, got.Items[i].Amount)
		require.True(t, want.Items[i].Price.Equal(got.Items[i].Price))
	}
}

func TestCartRepository_RoundTrip(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"file": func(t *testing.T) Store {
			f, err := NewFile(t.TempDir())
			require.NoError(t, err)
			return f
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			repo := NewCartRepository(newStore(t), DefaultKey)

			require.NoError(t, repo.Save(context.Background(), sampleCart()))
			loaded, err := repo.Load(context.Background())

			require.NoError(t, err)
			requireSameCart(t, sampleCart(), loaded)
		})
	}
}

func TestCartRepository_EmptySlot(t *testing.T) {
	repo := NewCartRepository(NewMemory(), DefaultKey)

	loaded, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, loaded.Items)
	require.Len(t, loaded.Items, 0)
}

func TestCartRepository_CorruptSlot(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Put(context.Background(), DefaultKey, []byte("not json")))

	_, err := NewCartRepository(store, DefaultKey).Load(context.Background())

	require.ErrorIs(t, err, domcart.ErrInvalidCart)
}

func TestCartRepository_SaveOverwrites(t *testing.T) {
	store := NewMemory()
	repo := NewCartRepository(store, DefaultKey)

	require.NoError(t, repo.Save(context.Background(), sampleCart()))
	require.NoError(t, repo.Save(context.Background(), domcart.Cart{}))

	data, err := store.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}

func TestSessionKey(t *testing.T) {
	require.Equal(t, "@cartData:abc", SessionKey("", "abc"))
	require.Equal(t, "cart:abc", SessionKey("cart", "abc"))
}

func TestFile_KeysAreIsolated(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Put(context.Background(), "@cartData:a", []byte("1")))
	require.NoError(t, f.Put(context.Background(), "@cartData:b", []byte("2")))

	a, err := f.Get(context.Background(), "@cartData:a")
	require.NoError(t, err)
	require.Equal(t, "1", string(a))

	_, err = f.Get(context.Background(), "@cartData:c")
	require.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "temp files must not be left behind")
	require.NoError(t, f.Ping(context.Background()))
}

func TestFile_PingMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	require.Error(t, f.Ping(context.Background()))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	data := []byte("abc")
	require.NoError(t, m.Put(context.Background(), "k", data))
	data[0] = 'z'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}
