package ports

import "context"

// CartLine is one product the user intends to buy.
type CartLine struct {
	ProductID int64
	Quantity  int64
}

// CartSource supplies the cart contents checkout operates on and clears the
// cart once an order has been materialized.
type CartSource interface {
	// Snapshot returns the user's cart lines deduplicated by product and in
	// canonical ascending product-id order. The checkout service treats the
	// snapshot as the fixed contract for the whole attempt.
	Snapshot(ctx context.Context, userID int64) ([]CartLine, error)
	// Clear empties the user's cart. Idempotent.
	Clear(ctx context.Context, userID int64) error
}
