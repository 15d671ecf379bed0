package cart

import "errors"

var (
	// ErrFetchFailure wraps any catalog or stock lookup error.
	ErrFetchFailure     = errors.New("could not fetch product data")
	ErrStockExceeded    = errors.New("stock limit reached")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrPersistFailure   = errors.New("could not persist cart")
	ErrInvalidCart      = errors.New("invalid cart")
)

// Outcome classifies the result of a cart operation for presentation.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeStockExceeded  Outcome = "stock_exceeded"
	OutcomeFetchFailure   Outcome = "fetch_failure"
	OutcomeNotInCart      Outcome = "not_in_cart"
	OutcomePersistFailure Outcome = "persist_failure"
)

func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrStockExceeded):
		return OutcomeStockExceeded
	case errors.Is(err, ErrProductNotInCart):
		return OutcomeNotInCart
	case errors.Is(err, ErrPersistFailure):
		return OutcomePersistFailure
	default:
		return OutcomeFetchFailure
	}
}
