package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-shop-api/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

// Service orchestrates cart use cases. Carts are per-user state, so reads and
// writes here have no cross-user contention; checkout-time consistency lives in
// the checkout domain.
type Service struct {
	repo    ports.Repository
	catalog catalogports.Repository
}

func NewService(repo ports.Repository, catalog catalogports.Repository) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// AddItem merges the product into the user's cart, creating the cart on first
// use. Product existence is not checked here; carts may reference products the
// catalog later loses, and checkout reports those as unavailable.
func (s *Service) AddItem(ctx context.Context, userID, productID, quantity int64) (*domain.Cart, error) {
	if userID <= 0 {
		return nil, errors.New("user id must be greater than zero")
	}
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(productID, quantity); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Put(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the product's line from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	if userID <= 0 {
		return nil, errors.New("user id must be greater than zero")
	}
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	if err := s.repo.Put(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ViewCart joins the cart lines with live catalog prices. Lines referencing
// products that no longer exist are skipped, matching how the view is a
// display concern rather than a reservation.
func (s *Service) ViewCart(ctx context.Context, userID int64) (*ports.PricedCart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &ports.PricedCart{Lines: make([]ports.PricedLine, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := product.Price * float64(line.Quantity)
		view.Lines = append(view.Lines, ports.PricedLine{
			ProductID: line.ProductID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		view.Total += subtotal
	}
	return view, nil
}

var _ ports.Service = (*Service)(nil)
