package product

import "context"

// Catalog resolves product details by identifier.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// StockSource resolves the available quantity of a product.
type StockSource interface {
	GetStock(ctx context.Context, id int64) (*Stock, error)
}
