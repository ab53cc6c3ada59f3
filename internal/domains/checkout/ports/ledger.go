package ports

import "context"

// InventoryLedger is the reservation primitive checkout is built on. Both
// operations must be atomic with respect to concurrent callers touching the
// same product.
type InventoryLedger interface {
	// TryDecrement reserves quantity units of a product. It succeeds only when
	// the available stock covers the full quantity; otherwise it leaves stock
	// untouched and returns ErrInsufficientStock or ErrProductUnavailable.
	TryDecrement(ctx context.Context, productID int64, quantity int64) error
	// Rollback returns previously reserved units to stock.
	Rollback(ctx context.Context, productID int64, quantity int64) error
}
