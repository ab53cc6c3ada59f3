package checkout

import (
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/platform/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "checkout.workflows.Run"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkout workflows.
	CheckoutTaskQueue = "CHECKOUT"
)

// CheckoutWorkflowInput captures the payload needed to run a checkout.
type CheckoutWorkflowInput struct {
	UserID  int64
	TraceID string
}

// CheckoutWorkflow orchestrates the cart-to-order transition for one user.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*checkoutdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "userId", input.UserID)...)
	order, err := sequences.RunCheckoutSequence(ctx, input.UserID)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "userId", input.UserID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "userId", input.UserID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
