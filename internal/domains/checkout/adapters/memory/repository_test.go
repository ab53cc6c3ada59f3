package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

func sampleOrder(t *testing.T, userID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(userID, []domain.OrderLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 3.0},
	}, time.Now().UTC())
	require.NoError(t, err)
	return order
}

func TestAppend_AssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)
	second, err := repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
}

func TestAppend_StoredOrderIsIsolatedFromCaller(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	order := sampleOrder(t, 1)
	stored, err := repo.Append(ctx, order)
	require.NoError(t, err)

	// Mutating the returned value must not reach the ledger.
	stored.Lines[0].Quantity = 99
	order.Lines[0].UnitPrice = 0

	reloaded, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), reloaded.Lines[0].Quantity)
	require.Equal(t, 3.0, reloaded.Lines[0].UnitPrice)
}

func TestGetByID_Unknown(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestListByUser_FiltersAndOrders(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sampleOrder(t, 2))
	require.NoError(t, err)
	third, err := repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, int64(1), orders[0].ID)
	require.Equal(t, third.ID, orders[1].ID)
}
