package ports

import "context"

// Quote is the price of a product at the moment it was resolved.
type Quote struct {
	ProductID int64
	UnitPrice float64
}

// PriceResolver captures a product's current price. Checkout resolves each
// line's price before reserving its stock so the order reflects prices at
// reservation time, not at cart-add time.
type PriceResolver interface {
	// Resolve returns the current quote or ErrProductUnavailable when the
	// product no longer exists.
	Resolve(ctx context.Context, productID int64) (Quote, error)
}
