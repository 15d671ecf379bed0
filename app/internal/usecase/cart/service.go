package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
	"example.com/storefront-cart/app/internal/domain/notice"
	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

type Notifier interface {
	Notify(ctx context.Context, n notice.Notice)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, notice.Notice) {}

// UpdateAmount is a signed change to the amount of one cart entry.
type UpdateAmount struct {
	ProductID int64
	Amount    int64
}

type subscriber struct {
	id int
	fn func(domcart.Cart)
}

// Service holds one cart. Mutations are serialized and every committed
// change is saved to the repository before it becomes visible.
type Service struct {
	repo     domcart.Repository
	catalog  domproduct.Catalog
	stock    domproduct.StockSource
	notifier Notifier
	log      zerolog.Logger

	opMu sync.Mutex

	mu         sync.RWMutex
	cart       domcart.Cart
	subs       []subscriber
	nextSub    int
	pending    []domcart.Cart
	delivering bool
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// NewService loads the persisted cart and returns a store around it.
func NewService(ctx context.Context, repo domcart.Repository, catalog domproduct.Catalog, stock domproduct.StockSource, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     repo,
		catalog:  catalog,
		stock:    stock,
		notifier: nopNotifier{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	c, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []domcart.Entry{}
	}
	s.cart = c
	return s, nil
}

// Cart returns a copy of the current cart.
func (s *Service) Cart() domcart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Subscribe registers fn to receive the cart after every committed change,
// in commit order. fn runs after the mutation lock is released, so it may
// call back into the store; changes it makes are delivered once fn returns.
// The returned func removes the subscription.
func (s *Service) Subscribe(fn func(domcart.Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Service) AddProduct(ctx context.Context, productID int64) error {
	s.opMu.Lock()

	err := s.increase(ctx, productID, 1)
	s.report(ctx, notice.OpAdd, productID, err)
	s.opMu.Unlock()

	s.deliver()
	return err
}

// RemoveProduct drops the entry for productID. Removing a product that is
// not in the cart is a no-op.
func (s *Service) RemoveProduct(ctx context.Context, productID int64) error {
	s.opMu.Lock()
	next, ok := s.Cart().Remove(productID)
	if !ok {
		s.opMu.Unlock()
		return nil
	}
	err := s.commit(ctx, next)
	s.report(ctx, notice.OpRemove, productID, err)
	s.opMu.Unlock()

	s.deliver()
	return err
}

// UpdateProductAmount applies a signed delta. Positive deltas go through
// the add path and are checked against stock; negative deltas that reach
// zero remove the entry.
func (s *Service) UpdateProductAmount(ctx context.Context, in UpdateAmount) error {
	if in.Amount == 0 {
		return nil
	}

	s.opMu.Lock()
	var err error
	if in.Amount > 0 {
		err = s.increase(ctx, in.ProductID, in.Amount)
		s.report(ctx, notice.OpAdd, in.ProductID, err)
	} else {
		delta := int64(math.MaxInt64)
		if in.Amount != math.MinInt64 {
			delta = -in.Amount
		}
		err = s.decrease(ctx, in.ProductID, delta)
		s.report(ctx, notice.OpUpdate, in.ProductID, err)
	}
	s.opMu.Unlock()

	s.deliver()
	return err
}

func (s *Service) increase(ctx context.Context, productID, delta int64) error {
	current := s.Cart()

	entry, ok := current.Find(productID)
	if !ok {
		p, err := s.fetchProduct(ctx, productID)
		if err != nil {
			return err
		}
		if delta > 1 {
			if err := s.checkStock(ctx, productID, delta); err != nil {
				return err
			}
		}
		return s.commit(ctx, current.Append(*p, delta))
	}

	if delta > math.MaxInt64-entry.Amount {
		return fmt.Errorf("%w: product %d amount overflows", domcart.ErrStockExceeded, productID)
	}
	want := entry.Amount + delta
	if err := s.checkStock(ctx, productID, want); err != nil {
		return err
	}
	next, _ := current.WithAmount(productID, want)
	return s.commit(ctx, next)
}

func (s *Service) decrease(ctx context.Context, productID, delta int64) error {
	current := s.Cart()

	entry, ok := current.Find(productID)
	if !ok {
		return fmt.Errorf("%w: product %d", domcart.ErrProductNotInCart, productID)
	}
	next, _ := current.WithAmount(productID, entry.Amount-delta)
	return s.commit(ctx, next)
}

func (s *Service) fetchProduct(ctx context.Context, productID int64) (*domproduct.Product, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %d: %w", domcart.ErrFetchFailure, productID, err)
	}
	if p == nil || p.ID != productID {
		return nil, fmt.Errorf("%w: catalog returned no product %d", domcart.ErrFetchFailure, productID)
	}
	return p, nil
}

func (s *Service) checkStock(ctx context.Context, productID, amount int64) error {
	st, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: stock %d: %w", domcart.ErrFetchFailure, productID, err)
	}
	if st == nil {
		return fmt.Errorf("%w: no stock for product %d", domcart.ErrFetchFailure, productID)
	}
	if !st.Covers(amount) {
		return fmt.Errorf("%w: product %d requested %d, available %d",
			domcart.ErrStockExceeded, productID, amount, st.Amount)
	}
	return nil
}

func (s *Service) commit(ctx context.Context, next domcart.Cart) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", domcart.ErrPersistFailure, err)
	}

	s.mu.Lock()
	s.cart = next
	s.pending = append(s.pending, next.Clone())
	s.mu.Unlock()
	return nil
}

// deliver hands queued snapshots to subscribers. Only one caller drains the
// queue at a time; a commit made while it runs is picked up by that caller.
func (s *Service) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]subscriber, len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(snapshot.Clone())
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.delivering = false
	s.mu.Unlock()
}

func (s *Service) report(ctx context.Context, op notice.Operation, productID int64, err error) {
	n, ok := notice.For(op, err)
	if !ok {
		return
	}
	if errors.Is(err, domcart.ErrStockExceeded) {
		s.log.Warn().Str("op", string(op)).Int64("product_id", productID).Err(err).Msg("cart operation rejected")
	} else {
		s.log.Error().Str("op", string(op)).Int64("product_id", productID).Err(err).Msg("cart operation failed")
	}
	s.notifier.Notify(ctx, n)
}
