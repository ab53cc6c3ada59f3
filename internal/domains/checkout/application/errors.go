package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var (
	// ErrEmptyCart rejects a checkout attempt on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrStorageFailure signals that the order could not be appended after all
	// stock had been reserved. Reservations were rolled back.
	ErrStorageFailure = errors.New("order storage failure")

	ErrInsufficientStock  = ports.ErrInsufficientStock
	ErrProductUnavailable = ports.ErrProductUnavailable
)

// ProductError attributes a checkout failure to the cart line that caused it.
// It unwraps to ErrInsufficientStock or ErrProductUnavailable so callers can
// branch with errors.Is while still reading the product id with errors.As.
type ProductError struct {
	ProductID int64
	Err       error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product %d: %v", e.ProductID, e.Err)
}

func (e *ProductError) Unwrap() error { return e.Err }
