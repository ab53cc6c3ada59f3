package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/cart/domain"
)

// Repository persists carts keyed by the owning user.
type Repository interface {
	// Get returns the user's cart. A user with no cart gets an empty cart, not
	// an error: carts exist implicitly.
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	// Put replaces the stored cart for its owning user.
	Put(ctx context.Context, cart *domain.Cart) error
	// Clear empties the user's cart. Idempotent: clearing an absent or already
	// empty cart succeeds.
	Clear(ctx context.Context, userID int64) error
}
