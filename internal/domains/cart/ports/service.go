package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/cart/domain"
)

// PricedLine is a cart line joined with live catalog data for display.
type PricedLine struct {
	ProductID int64
	Name      string
	Quantity  int64
	UnitPrice float64
	Subtotal  float64
}

// PricedCart is the transport-facing cart view with a running total.
type PricedCart struct {
	Lines []PricedLine
	Total float64
}

// Service exposes cart use cases to adapters.
type Service interface {
	AddItem(ctx context.Context, userID, productID, quantity int64) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error)
	ViewCart(ctx context.Context, userID int64) (*PricedCart, error)
}
