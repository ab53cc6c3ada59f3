package ports

import "errors"

var (
	// ErrInsufficientStock signals a reservation that would have oversold a
	// product. Carried inside a ProductError by the checkout service.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductUnavailable signals a cart line whose product no longer exists.
	ErrProductUnavailable = errors.New("product unavailable")
	ErrOrderNotFound      = errors.New("order not found")
)
