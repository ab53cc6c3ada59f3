package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
)

// CheckoutOrchestrator runs a checkout attempt. Implementations either call
// the service in-process or hand the attempt to a durable workflow engine.
type CheckoutOrchestrator interface {
	Run(ctx context.Context, userID int64) (*domain.Order, error)
}
