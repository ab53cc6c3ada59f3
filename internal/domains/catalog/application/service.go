package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases. Admin CRUD only; checkout-time stock
// mutation goes through the inventory ledger, never through this service.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
