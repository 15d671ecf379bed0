package cart

import "context"

// Repository persists the whole cart as a single snapshot.
type Repository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
}
