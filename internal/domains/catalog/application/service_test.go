package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

func TestCreateProduct_ValidatesAndPersists(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product, err := domain.NewProduct(0, "coffee", "dark roast", 7.50, 12)
	require.NoError(t, err)

	saved, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, "coffee", saved.Name)
	require.Equal(t, int64(12), saved.Stock)
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "coffee", Price: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product, err := domain.NewProduct(42, "coffee", "", 1.0, 1)
	require.NoError(t, err)
	_, err = svc.UpdateProduct(context.Background(), product)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateProduct_RewritesFields(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	product, err := domain.NewProduct(0, "coffee", "", 7.50, 12)
	require.NoError(t, err)
	saved, err := svc.CreateProduct(ctx, product)
	require.NoError(t, err)

	saved.Price = 8.25
	updated, err := svc.UpdateProduct(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, 8.25, updated.Price)
}

func TestDeleteProduct_ThenGetFails(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	product, err := domain.NewProduct(0, "coffee", "", 7.50, 12)
	require.NoError(t, err)
	saved, err := svc.CreateProduct(ctx, product)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, saved.ID))
	_, err = svc.GetProduct(ctx, saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts_SortedByID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	for _, name := range []string{"coffee", "mug", "grinder"} {
		product, err := domain.NewProduct(0, name, "", 1.0, 1)
		require.NoError(t, err)
		_, err = svc.CreateProduct(ctx, product)
		require.NoError(t, err)
	}

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "coffee", list[0].Name)
	require.Equal(t, "grinder", list[2].Name)
}
