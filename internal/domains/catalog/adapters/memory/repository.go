package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter. The mutex makes the
// conditional stock decrement a single indivisible check-and-set, so concurrent
// checkouts on the same product are linearized.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ConditionalDecrementStock performs the check and the subtraction under one
// lock acquisition; there is no window where another caller can observe the
// checked value before it is written.
func (r *Repository) ConditionalDecrementStock(_ context.Context, productID int64, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, errors.New("quantity must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	if product.Stock < quantity {
		return product.Stock, ports.ErrInsufficientStock
	}
	product.Stock -= quantity
	return product.Stock, nil
}

// IncrementStock re-adds quantity with no precondition.
func (r *Repository) IncrementStock(_ context.Context, productID int64, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, errors.New("quantity must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	product.Stock += quantity
	return product.Stock, nil
}

// ProductStock reads the current stock for a product. Together with
// CompareAndSwapStock it lets callers build an optimistic-retry decrement when
// they cannot use the native conditional primitive.
func (r *Repository) ProductStock(_ context.Context, productID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	return product.Stock, nil
}

// CompareAndSwapStock writes next only when the stored stock still equals
// expected, reporting whether the swap happened.
func (r *Repository) CompareAndSwapStock(_ context.Context, productID int64, expected, next int64) (bool, error) {
	if next < 0 {
		return false, domain.ErrNegativeStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return false, ports.ErrNotFound
	}
	if product.Stock != expected {
		return false, nil
	}
	product.Stock = next
	return true, nil
}
