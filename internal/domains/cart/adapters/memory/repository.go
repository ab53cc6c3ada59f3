package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

func NewRepository() *Repository {
	return &Repository{carts: map[int64]*domain.Cart{}}
}

func (r *Repository) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[userID]
	if !ok {
		return domain.NewCart(userID), nil
	}
	return cloneCart(cart), nil
}

func (r *Repository) Put(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	clone := cloneCart(cart)
	if err := clone.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[clone.UserID] = clone
	return nil
}

func (r *Repository) Clear(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[userID]; ok {
		cart.Lines = nil
	}
	return nil
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	clone := &domain.Cart{UserID: cart.UserID}
	if len(cart.Lines) > 0 {
		clone.Lines = make([]domain.CartLine, len(cart.Lines))
		copy(clone.Lines, cart.Lines)
	}
	return clone
}
