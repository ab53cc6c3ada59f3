// Package cartsource adapts the cart repository into checkout's cart surface.
package cartsource

import (
	"context"
	"sort"

	cartports "github.com/Apurer/go-shop-api/internal/domains/cart/ports"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var _ ports.CartSource = (*Source)(nil)

// Source reads carts for checkout. Snapshots merge duplicate product lines
// and come back in ascending product-id order.
type Source struct {
	carts cartports.Repository
}

func NewSource(carts cartports.Repository) *Source {
	return &Source{carts: carts}
}

func (s *Source) Snapshot(ctx context.Context, userID int64) ([]ports.CartLine, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := make(map[int64]int64, len(cart.Lines))
	for _, line := range cart.Lines {
		merged[line.ProductID] += line.Quantity
	}
	lines := make([]ports.CartLine, 0, len(merged))
	for productID, quantity := range merged {
		lines = append(lines, ports.CartLine{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines, nil
}

func (s *Source) Clear(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}
