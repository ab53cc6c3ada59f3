package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

// Service turns carts into orders with all-or-nothing stock reservation.
// Either every cart line gets its stock reserved and an order is appended, or
// every already-taken reservation is returned and no order exists.
type Service struct {
	carts  ports.CartSource
	ledger ports.InventoryLedger
	prices ports.PriceResolver
	orders ports.OrderRepository
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the order timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(carts ports.CartSource, ledger ports.InventoryLedger, prices ports.PriceResolver, orders ports.OrderRepository, opts ...Option) *Service {
	service := &Service{
		carts:  carts,
		ledger: ledger,
		prices: prices,
		orders: orders,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// reservation is one successfully decremented line, kept for compensation.
type reservation struct {
	productID int64
	quantity  int64
}

// Checkout validates the user's cart, reserves stock line by line in
// ascending product-id order, appends the order, and clears the cart. Any
// failure before the order is appended rolls reservations back in reverse
// order. A cart-clear failure after the append does not undo the order.
func (s *Service) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	lines, err := s.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	reserved := make([]reservation, 0, len(lines))
	committed := false
	defer func() {
		if committed {
			return
		}
		s.compensate(context.WithoutCancel(ctx), userID, reserved)
	}()

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		quote, err := s.prices.Resolve(ctx, line.ProductID)
		if err != nil {
			return nil, s.lineError(line.ProductID, err)
		}
		if err := s.ledger.TryDecrement(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, s.lineError(line.ProductID, err)
		}
		reserved = append(reserved, reservation{productID: line.ProductID, quantity: line.Quantity})
		orderLines = append(orderLines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: quote.UnitPrice,
		})
	}

	order, err := domain.NewOrder(userID, orderLines, s.now().UTC())
	if err != nil {
		return nil, err
	}
	stored, err := s.orders.Append(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	committed = true

	// The order stands even when clearing the cart fails: its reservations are
	// justified by the appended order, so stock is not returned.
	if err := s.carts.Clear(context.WithoutCancel(ctx), userID); err != nil {
		s.logger.Error("cart clear failed after order append",
			slog.Int64("user_id", userID),
			slog.Int64("order_id", stored.ID),
			slog.Any("error", err))
	}
	return stored, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) lineError(productID int64, err error) error {
	if errors.Is(err, ports.ErrInsufficientStock) || errors.Is(err, ports.ErrProductUnavailable) {
		return &ProductError{ProductID: productID, Err: err}
	}
	return fmt.Errorf("product %d: %w", productID, err)
}

// compensate returns reservations in reverse acquisition order. Rollback
// failures are logged and the remaining lines are still attempted.
func (s *Service) compensate(ctx context.Context, userID int64, reserved []reservation) {
	for i := len(reserved) - 1; i >= 0; i-- {
		r := reserved[i]
		if err := s.ledger.Rollback(ctx, r.productID, r.quantity); err != nil {
			s.logger.Error("stock rollback failed",
				slog.Int64("user_id", userID),
				slog.Int64("product_id", r.productID),
				slog.Int64("quantity", r.quantity),
				slog.Any("error", err))
		}
	}
}

var _ ports.Service = (*Service)(nil)
