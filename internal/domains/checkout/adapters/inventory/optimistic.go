package inventory

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

// StockCAS is the compare-and-swap surface the optimistic ledger needs. The
// in-memory catalog repository implements it.
type StockCAS interface {
	ProductStock(ctx context.Context, productID int64) (int64, error)
	CompareAndSwapStock(ctx context.Context, productID int64, expected, next int64) (bool, error)
}

var _ ports.InventoryLedger = (*OptimisticLedger)(nil)

// OptimisticLedger reserves stock with a read-then-swap loop instead of a
// guarded decrement. A lost race re-reads and retries; insufficiency is only
// reported against a freshly observed stock level.
type OptimisticLedger struct {
	stock StockCAS
}

func NewOptimisticLedger(stock StockCAS) *OptimisticLedger {
	return &OptimisticLedger{stock: stock}
}

func (l *OptimisticLedger) TryDecrement(ctx context.Context, productID int64, quantity int64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := l.stock.ProductStock(ctx, productID)
		if err != nil {
			return mapCASError(err)
		}
		if current < quantity {
			return ports.ErrInsufficientStock
		}
		swapped, err := l.stock.CompareAndSwapStock(ctx, productID, current, current-quantity)
		if err != nil {
			return mapCASError(err)
		}
		if swapped {
			return nil
		}
	}
}

func (l *OptimisticLedger) Rollback(ctx context.Context, productID int64, quantity int64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := l.stock.ProductStock(ctx, productID)
		if err != nil {
			return mapCASError(err)
		}
		swapped, err := l.stock.CompareAndSwapStock(ctx, productID, current, current+quantity)
		if err != nil {
			return mapCASError(err)
		}
		if swapped {
			return nil
		}
	}
}

func mapCASError(err error) error {
	if errors.Is(err, catalogports.ErrNotFound) {
		return ports.ErrProductUnavailable
	}
	return err
}
