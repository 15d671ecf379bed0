package product

import "github.com/shopspring/decimal"

// Prices travel as JSON numbers, the format the catalog serves and the cart
// slot has always stored.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// Stock is the available quantity reported by the stock service.
type Stock struct {
	ProductID int64 `json:"id"`
	Amount    int64 `json:"amount"`
}

// Covers reports whether the stock can serve a cart line of the given amount.
func (s Stock) Covers(amount int64) bool {
	return s.Amount >= amount
}
