package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

const (
	// RunCheckoutActivityName executes a full checkout attempt for one user.
	RunCheckoutActivityName = "checkout.activities.RunCheckout"

	// Application error types carried across the Temporal boundary so the
	// caller can rebuild the original business error.
	ErrTypeEmptyCart          = "EMPTY_CART"
	ErrTypeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrTypeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrTypeStorageFailure     = "ORDER_STORAGE_FAILURE"
)

// FailureDetail attributes a checkout failure to a product line.
type FailureDetail struct {
	ProductID int64
}

// Activities groups the Temporal activities of the checkout bounded context.
type Activities struct {
	service checkoutports.Service
}

// NewActivities wires the checkout service into the Temporal activities bundle.
func NewActivities(service checkoutports.Service) *Activities {
	return &Activities{service: service}
}

// RunCheckout performs the checkout. Business failures come back as
// non-retryable application errors: retrying an insufficient-stock or
// empty-cart outcome cannot change it, and the service has already rolled
// back its reservations.
func (a *Activities) RunCheckout(ctx context.Context, userID int64) (*checkoutdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("checkout activity not initialized", "userId", userID)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("RunCheckout activity started", "userId", userID)
	order, err := a.service.Checkout(ctx, userID)
	if err != nil {
		logger.Error("RunCheckout activity failed", "userId", userID, "error", err)
		return nil, asApplicationError(err)
	}
	logger.Info("RunCheckout activity completed", "userId", userID, "orderId", order.ID)
	return order, nil
}

func asApplicationError(err error) error {
	var productErr *application.ProductError
	switch {
	case errors.Is(err, application.ErrEmptyCart):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeEmptyCart, err)
	case errors.As(err, &productErr) && errors.Is(err, application.ErrInsufficientStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err,
			FailureDetail{ProductID: productErr.ProductID})
	case errors.As(err, &productErr) && errors.Is(err, application.ErrProductUnavailable):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductUnavailable, err,
			FailureDetail{ProductID: productErr.ProductID})
	case errors.Is(err, application.ErrStorageFailure):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeStorageFailure, err)
	default:
		return err
	}
}
