package mysql

import (
	"context"
	"database/sql"
	"errors"

	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

// ProductRepository reads the catalog and stock levels straight from the
// products table, for deployments without the HTTP catalog service:
//
//	CREATE TABLE products (
//	    id    BIGINT PRIMARY KEY,
//	    name  VARCHAR(255) NOT NULL,
//	    price DECIMAL(12,2) NOT NULL,
//	    image VARCHAR(1024) NOT NULL DEFAULT '',
//	    stock BIGINT NOT NULL DEFAULT 0
//	);
type ProductRepository struct {
	db *sql.DB
}

var (
	_ domproduct.Catalog     = (*ProductRepository)(nil)
	_ domproduct.StockSource = (*ProductRepository)(nil)
)

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, price, image FROM products WHERE id = ?`, id)

	var p domproduct.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetStock(ctx context.Context, id int64) (*domproduct.Stock, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, stock FROM products WHERE id = ?`, id)

	var s domproduct.Stock
	if err := row.Scan(&s.ProductID, &s.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrStockNotFound
		}
		return nil, err
	}
	return &s, nil
}
