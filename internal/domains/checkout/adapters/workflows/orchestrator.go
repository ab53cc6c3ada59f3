package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
	checkoutactivities "github.com/Apurer/go-shop-api/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-shop-api/internal/platform/temporal/workflows/checkout"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout starts checkout workflows on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

// Run starts the durable checkout workflow and waits for its result.
func (o *TemporalCheckout) Run(ctx context.Context, userID int64) (*checkoutdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("checkout-%d-%s", userID, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflow,
		checkoutworkflows.CheckoutWorkflowInput{UserID: userID, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var order checkoutdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, restoreBusinessError(err)
	}
	return &order, nil
}

// restoreBusinessError rebuilds the checkout error taxonomy from the typed
// application error the activity attached, so callers behave the same whether
// checkout ran inline or through Temporal.
func restoreBusinessError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case checkoutactivities.ErrTypeEmptyCart:
		return application.ErrEmptyCart
	case checkoutactivities.ErrTypeInsufficientStock:
		return &application.ProductError{ProductID: failureProductID(appErr), Err: application.ErrInsufficientStock}
	case checkoutactivities.ErrTypeProductUnavailable:
		return &application.ProductError{ProductID: failureProductID(appErr), Err: application.ErrProductUnavailable}
	case checkoutactivities.ErrTypeStorageFailure:
		return fmt.Errorf("%w: %s", application.ErrStorageFailure, appErr.Message())
	default:
		return err
	}
}

func failureProductID(appErr *temporal.ApplicationError) int64 {
	if !appErr.HasDetails() {
		return 0
	}
	var detail checkoutactivities.FailureDetail
	if err := appErr.Details(&detail); err != nil {
		return 0
	}
	return detail.ProductID
}

// InlineCheckout executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineCheckout struct {
	service ports.Service
}

// NewInlineCheckout wraps the checkout service for synchronous execution.
func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

// Run delegates to the application service without durable orchestration.
func (o *InlineCheckout) Run(ctx context.Context, userID int64) (*checkoutdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.service.Checkout(ctx, userID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
