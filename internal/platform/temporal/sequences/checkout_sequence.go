package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	checkoutactivities "github.com/Apurer/go-shop-api/internal/platform/temporal/activities/checkout"
)

// RunCheckoutSequence executes the ordered activities of a checkout attempt.
// The whole cart-to-order transition runs inside one activity so reservation
// and compensation stay a single in-process unit; only transient failures
// around it are retried.
func RunCheckoutSequence(ctx workflow.Context, userID int64) (*checkoutdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "userId", userID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order checkoutdomain.Order
	err := workflow.ExecuteActivity(ctx, checkoutactivities.RunCheckoutActivityName, userID).Get(ctx, &order)
	if err != nil {
		logger.Error("checkout sequence failed", "userId", userID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence completed", "userId", userID, "orderId", order.ID)
	return &order, nil
}
