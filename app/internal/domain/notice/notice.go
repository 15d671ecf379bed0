package notice

import (
	"errors"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
)

type Kind string

const (
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Key identifies a user-facing message in the text catalog.
type Key string

const (
	KeyStockLimitReached Key = "stock_limit_reached"
	KeyAddFailed         Key = "add_failed"
	KeyRemoveFailed      Key = "remove_failed"
	KeyUpdateFailed      Key = "update_failed"
)

type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
	OpUpdate Operation = "update"
)

type Notice struct {
	Kind Kind
	Key  Key
}

// For maps the result of a cart operation to the notice shown to the user.
// Successful operations are silent.
func For(op Operation, err error) (Notice, bool) {
	if err == nil {
		return Notice{}, false
	}
	if errors.Is(err, domcart.ErrStockExceeded) {
		return Notice{Kind: KindWarning, Key: KeyStockLimitReached}, true
	}
	switch op {
	case OpRemove:
		return Notice{Kind: KindError, Key: KeyRemoveFailed}, true
	case OpUpdate:
		return Notice{Kind: KindError, Key: KeyUpdateFailed}, true
	default:
		return Notice{Kind: KindError, Key: KeyAddFailed}, true
	}
}
