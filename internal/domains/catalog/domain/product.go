package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// Product models a catalog item. Stock is mutated only through the repository's
// conditional decrement/increment primitives; no caller computes a new stock
// value in application memory and writes it back.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int64
}

// NewProduct validates and constructs a new Product aggregate.
func NewProduct(id int64, name, description string, price float64, stock int64) (*Product, error) {
	product := &Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
