package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

var ErrEmptySession = errors.New("session id is required")

// RepositoryFactory returns the persistence slot of one session's cart.
type RepositoryFactory func(sessionID string) domcart.Repository

type registryEntry struct {
	ready    chan struct{}
	svc      *Service
	err      error
	lastUsed time.Time
}

func (e *registryEntry) loaded() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Registry keeps one Service per session, created on first use. Loading a
// session's cart happens outside the registry lock, so a slow backend only
// delays requests for that session. Idle stores can be dropped with Evict;
// the slot is the source of truth and the next Get reloads it.
type Registry struct {
	newRepo RepositoryFactory
	catalog domproduct.Catalog
	stock   domproduct.StockSource
	opts    []Option
	now     func() time.Time

	mu     sync.Mutex
	stores map[string]*registryEntry
}

func NewRegistry(newRepo RepositoryFactory, catalog domproduct.Catalog, stock domproduct.StockSource, opts ...Option) *Registry {
	return &Registry{
		newRepo: newRepo,
		catalog: catalog,
		stock:   stock,
		opts:    opts,
		now:     time.Now,
		stores:  make(map[string]*registryEntry),
	}
}

func (r *Registry) Get(ctx context.Context, sessionID string) (*Service, error) {
	if sessionID == "" {
		return nil, ErrEmptySession
	}

	r.mu.Lock()
	if e, ok := r.stores[sessionID]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return e.svc, e.err
	}

	e := &registryEntry{ready: make(chan struct{})}
	r.stores[sessionID] = e
	r.mu.Unlock()

	e.svc, e.err = NewService(ctx, r.newRepo(sessionID), r.catalog, r.stock, r.opts...)

	r.mu.Lock()
	if e.err != nil {
		if r.stores[sessionID] == e {
			delete(r.stores, sessionID)
		}
	} else {
		e.lastUsed = r.now()
	}
	r.mu.Unlock()
	close(e.ready)

	return e.svc, e.err
}

// Evict drops loaded stores not used for longer than idle and reports how
// many were dropped.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.stores {
		if e.loaded() && e.lastUsed.Before(cutoff) {
			delete(r.stores, id)
			n++
		}
	}
	return n
}

// RunEvictor calls Evict every interval until ctx is done.
func (r *Registry) RunEvictor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Evict(idle)
		}
	}
}

// Len reports how many session carts are loaded or loading.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
