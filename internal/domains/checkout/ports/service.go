package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
)

// Service is the checkout use-case surface.
type Service interface {
	// Checkout converts the user's cart into an immutable order, reserving
	// stock for every line or for none of them.
	Checkout(ctx context.Context, userID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
}
