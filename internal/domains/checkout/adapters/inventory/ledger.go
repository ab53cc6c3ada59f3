// Package inventory adapts the product catalog into the reservation ledger
// checkout runs on.
package inventory

import (
	"context"
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var _ ports.InventoryLedger = (*Ledger)(nil)

// Ledger reserves stock through the catalog repository's conditional
// decrement. Atomicity comes from the repository: the memory repository
// serializes under its mutex and the PostgreSQL repository issues a single
// guarded UPDATE.
type Ledger struct {
	products catalogports.Repository
}

func NewLedger(products catalogports.Repository) *Ledger {
	return &Ledger{products: products}
}

func (l *Ledger) TryDecrement(ctx context.Context, productID int64, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	_, err := l.products.ConditionalDecrementStock(ctx, productID, quantity)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductUnavailable
	default:
		return err
	}
}

func (l *Ledger) Rollback(ctx context.Context, productID int64, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	_, err := l.products.IncrementStock(ctx, productID, quantity)
	if errors.Is(err, catalogports.ErrNotFound) {
		// The product was deleted while its units were reserved. There is no
		// row to return the units to.
		return ports.ErrProductUnavailable
	}
	return err
}
