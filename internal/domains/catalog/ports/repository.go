package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a conditional decrement that would have
	// taken stock below zero. The stored stock is left untouched.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists products and exposes the atomic stock primitives the
// checkout inventory ledger is built on.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Product, error)

	// ConditionalDecrementStock subtracts quantity from the product's stock as
	// one indivisible operation, succeeding only when stock >= quantity.
	// Concurrent calls on the same product are linearized; stock never goes
	// negative. Returns the remaining stock.
	ConditionalDecrementStock(ctx context.Context, productID int64, quantity int64) (int64, error)
	// IncrementStock adds quantity back to the product's stock with no
	// precondition. Used by checkout compensation. Returns the new stock.
	IncrementStock(ctx context.Context, productID int64, quantity int64) (int64, error)
}
