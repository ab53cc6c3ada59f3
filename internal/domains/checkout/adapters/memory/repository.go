// Package memory holds the in-memory order ledger used by tests and
// database-less runs.
package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository is an append-only in-memory order store. Stored orders are
// cloned on the way in and out so callers cannot mutate the ledger.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[int64]*domain.Order), nextID: 1}
}

func (r *Repository) Append(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneOrder(order)
	clone.ID = r.nextID
	r.nextID++
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]*domain.Order, 0)
	for id := int64(1); id < r.nextID; id++ {
		order, ok := r.orders[id]
		if !ok || order.UserID != userID {
			continue
		}
		orders = append(orders, cloneOrder(order))
	}
	return orders, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = make([]domain.OrderLine, len(order.Lines))
	copy(clone.Lines, order.Lines)
	return &clone
}
