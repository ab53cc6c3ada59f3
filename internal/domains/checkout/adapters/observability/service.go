package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

const tracerName = "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout service with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core checkout service.
func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, userID int64) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Checkout",
		trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	s.logInfo(ctx, "starting checkout", slog.Int64("user.id", userID))
	order, err := s.inner.Checkout(ctx, userID)
	if err != nil {
		s.metrics.recordFailed(ctx, failureReason(err))
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID), attribute.Int("order.lines", len(order.Lines)))
	s.metrics.recordCompleted(ctx, len(order.Lines))
	s.logInfo(ctx, "checkout completed",
		slog.Int64("user.id", userID),
		slog.Int64("order.id", order.ID),
		slog.Float64("order.total", order.Total))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.GetOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.ListOrders",
		trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, application.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, application.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, application.ErrProductUnavailable):
		return "product_unavailable"
	case errors.Is(err, application.ErrStorageFailure):
		return "storage_failure"
	default:
		return "internal"
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	checkoutsCompleted metric.Int64Counter
	checkoutsFailed    metric.Int64Counter
	orderLines         metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	completed, _ := m.Int64Counter("checkout.service.completed", metric.WithDescription("Number of completed checkouts"))
	failed, _ := m.Int64Counter("checkout.service.failed", metric.WithDescription("Number of failed checkouts"))
	lines, _ := m.Int64Histogram("checkout.service.order_lines", metric.WithDescription("Line count per completed order"))
	return serviceMetrics{checkoutsCompleted: completed, checkoutsFailed: failed, orderLines: lines}
}

func (m serviceMetrics) recordCompleted(ctx context.Context, lineCount int) {
	if m.checkoutsCompleted != nil {
		m.checkoutsCompleted.Add(ctx, 1)
	}
	if m.orderLines != nil {
		m.orderLines.Record(ctx, int64(lineCount))
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context, reason string) {
	if m.checkoutsFailed != nil {
		m.checkoutsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ checkoutports.Service = (*Service)(nil)
