package mysql

import (
	"context"
	"database/sql"
	"errors"

	"example.com/storefront-cart/app/internal/infra/persistence/slot"
)

// SlotRepository keeps cart slots in the cart_slots table:
//
//	CREATE TABLE cart_slots (
//	    slot_key   VARCHAR(191) PRIMARY KEY,
//	    payload    JSON NOT NULL,
//	    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	);
type SlotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
        SELECT payload
        FROM cart_slots
        WHERE slot_key = ?
    `, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, slot.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *SlotRepository) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cart_slots (slot_key, payload)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE payload = VALUES(payload)
    `, key, data)
	return err
}

func (r *SlotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
