package domain

import (
	"errors"
	"time"
)

// StatusCompleted is the only status an order ever carries: orders are
// materialized once checkout has fully succeeded and never transition.
const StatusCompleted = "completed"

var (
	ErrInvalidUserID = errors.New("user id must be positive")
	ErrNoLines       = errors.New("order must have at least one line")
	ErrInvalidLine   = errors.New("order line must have positive product id and quantity")
)

// OrderLine is one purchased product with the unit price captured at the
// moment its stock was reserved.
type OrderLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice float64
	Subtotal  float64
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID        int64
	UserID    int64
	Lines     []OrderLine
	Total     float64
	Status    string
	CreatedAt time.Time
}

// NewOrder builds a completed order from reserved lines, computing subtotals
// and the order total from the captured unit prices.
func NewOrder(userID int64, lines []OrderLine, createdAt time.Time) (*Order, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	priced := make([]OrderLine, 0, len(lines))
	var total float64
	for _, line := range lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return nil, ErrInvalidLine
		}
		line.Subtotal = line.UnitPrice * float64(line.Quantity)
		total += line.Subtotal
		priced = append(priced, line)
	}
	return &Order{
		UserID:    userID,
		Lines:     priced,
		Total:     total,
		Status:    StatusCompleted,
		CreatedAt: createdAt,
	}, nil
}
