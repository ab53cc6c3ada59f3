// Package pricing resolves unit prices from the product catalog.
package pricing

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var _ ports.PriceResolver = (*CatalogResolver)(nil)

// CatalogResolver quotes the catalog's current price for a product.
type CatalogResolver struct {
	products catalogports.Repository
}

func NewCatalogResolver(products catalogports.Repository) *CatalogResolver {
	return &CatalogResolver{products: products}
}

func (r *CatalogResolver) Resolve(ctx context.Context, productID int64) (ports.Quote, error) {
	product, err := r.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return ports.Quote{}, ports.ErrProductUnavailable
		}
		return ports.Quote{}, err
	}
	return ports.Quote{ProductID: product.ID, UnitPrice: product.Price}, nil
}
