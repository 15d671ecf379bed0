package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"example.com/storefront-cart/app/internal/infra/persistence/slot"
)

// Querier is the subset of *pgxpool.Pool the slot repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// SlotRepository keeps cart slots in PostgreSQL:
//
//	CREATE TABLE cart_slots (
//	    slot_key   TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type SlotRepository struct {
	q Querier
}

var _ slot.Store = (*SlotRepository)(nil)

func NewSlotRepository(q Querier) *SlotRepository {
	return &SlotRepository{q: q}
}

func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT payload FROM cart_slots WHERE slot_key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, slot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return payload, nil
}

func (r *SlotRepository) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO cart_slots (slot_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, key, data); err != nil {
		return fmt.Errorf("put slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) Ping(ctx context.Context) error {
	return r.q.Ping(ctx)
}
