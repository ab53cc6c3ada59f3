package mapper

import (
	catalogdomain "github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
)

// Product represents the transport-layer shape used by the HTTP handlers.
type Product struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(product Product) (*catalogdomain.Product, error) {
	return catalogdomain.NewProduct(
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
	)
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
	}
}
