package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
)

// OrderRepository is an append-only ledger of completed orders.
type OrderRepository interface {
	// Append stores a new order and returns it with its assigned id. Stored
	// orders are never updated or deleted.
	Append(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}
