package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

func TestRegistry_OneStorePerSession(t *testing.T) {
	repos := make(map[string]*mockCartRepository)
	catalog := newMockCatalog()
	catalog.products[1] = &domproduct.Product{ID: 1, Name: "A"}

	reg := NewRegistry(func(sessionID string) domcart.Repository {
		repo := &mockCartRepository{}
		repos[sessionID] = repo
		return repo
	}, catalog, newMockStock())

	a, err := reg.Get(context.Background(), "alice")
	require.NoError(t, err)
	again, err := reg.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Same(t, a, again)

	b, err := reg.Get(context.Background(), "bob")
	require.NoError(t, err)
	require.NotSame(t, a, b)
	require.Equal(t, 2, reg.Len())

	require.NoError(t, a.AddProduct(context.Background(), 1))
	require.Len(t, a.Cart().Items, 1)
	require.Len(t, b.Cart().Items, 0)
	require.Len(t, repos["alice"].saved, 1)
	require.Empty(t, repos["bob"].saved)
}

func TestRegistry_EmptySession(t *testing.T) {
	reg := NewRegistry(func(string) domcart.Repository { return &mockCartRepository{} }, newMockCatalog(), newMockStock())

	_, err := reg.Get(context.Background(), "")

	require.ErrorIs(t, err, ErrEmptySession)
}

func TestRegistry_LoadErrorIsNotCached(t *testing.T) {
	fail := true
	reg := NewRegistry(func(string) domcart.Repository {
		if fail {
			return &mockCartRepository{loadErr: errors.New("unavailable")}
		}
		return &mockCartRepository{}
	}, newMockCatalog(), newMockStock())

	_, err := reg.Get(context.Background(), "s1")
	require.Error(t, err)
	require.Equal(t, 0, reg.Len())

	fail = false
	_, err = reg.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
}

type blockingCartRepository struct {
	mockCartRepository
	release chan struct{}
}

func (b *blockingCartRepository) Load(ctx context.Context) (domcart.Cart, error) {
	<-b.release
	return b.mockCartRepository.Load(ctx)
}

func TestRegistry_EvictDropsIdleStoresAndReloads(t *testing.T) {
	slots := make(map[string]*mockCartRepository)
	catalog := newMockCatalog()
	catalog.products[1] = &domproduct.Product{ID: 1, Name: "A"}
	loads := 0
	reg := NewRegistry(func(sessionID string) domcart.Repository {
		loads++
		repo, ok := slots[sessionID]
		if !ok {
			repo = &mockCartRepository{}
			slots[sessionID] = repo
		}
		// the slot keeps whatever was last saved
		repo.initial = repo.last()
		return repo
	}, catalog, newMockStock())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	first, err := reg.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, first.AddProduct(context.Background(), 1))

	now = now.Add(10 * time.Minute)
	_, err = reg.Get(context.Background(), "bob")
	require.NoError(t, err)

	now = now.Add(25 * time.Minute)
	require.Equal(t, 1, reg.Evict(30*time.Minute))
	require.Equal(t, 1, reg.Len())

	reloaded, err := reg.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.NotSame(t, first, reloaded)
	require.Equal(t, 3, loads)
	require.Equal(t, map[int64]int64{1: 1}, amounts(reloaded.Cart()))
}

func TestRegistry_SlowLoadDoesNotBlockOtherSessions(t *testing.T) {
	slow := &blockingCartRepository{release: make(chan struct{})}
	reg := NewRegistry(func(sessionID string) domcart.Repository {
		if sessionID == "slow" {
			return slow
		}
		return &mockCartRepository{}
	}, newMockCatalog(), newMockStock())

	slowDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), "slow")
		slowDone <- err
	}()

	fastDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), "fast")
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loading one session blocked another")
	}

	close(slow.release)
	require.NoError(t, <-slowDone)
	require.Equal(t, 2, reg.Len())
}

func TestRegistry_WaitingGetHonoursContext(t *testing.T) {
	slow := &blockingCartRepository{release: make(chan struct{})}
	reg := NewRegistry(func(string) domcart.Repository { return slow }, newMockCatalog(), newMockStock())

	loaded := make(chan struct{})
	go func() {
		_, _ = reg.Get(context.Background(), "s1")
		close(loaded)
	}()
	require.Eventually(t, func() bool { return reg.Len() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reg.Get(ctx, "s1")
	require.ErrorIs(t, err, context.Canceled)

	close(slow.release)
	<-loaded
}
