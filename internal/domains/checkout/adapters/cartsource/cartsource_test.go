package cartsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/memory"
	cartdomain "github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

func TestSnapshot_EmptyForUnknownUser(t *testing.T) {
	source := NewSource(cartmemory.NewRepository())
	lines, err := source.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestSnapshot_SortsByProductID(t *testing.T) {
	carts := cartmemory.NewRepository()
	source := NewSource(carts)
	ctx := context.Background()

	cart := cartdomain.NewCart(1)
	require.NoError(t, cart.Add(9, 1))
	require.NoError(t, cart.Add(3, 2))
	require.NoError(t, cart.Add(5, 4))
	require.NoError(t, carts.Put(ctx, cart))

	lines, err := source.Snapshot(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []ports.CartLine{
		{ProductID: 3, Quantity: 2},
		{ProductID: 5, Quantity: 4},
		{ProductID: 9, Quantity: 1},
	}, lines)
}

func TestClear_Idempotent(t *testing.T) {
	carts := cartmemory.NewRepository()
	source := NewSource(carts)
	ctx := context.Background()

	cart := cartdomain.NewCart(1)
	require.NoError(t, cart.Add(1, 1))
	require.NoError(t, carts.Put(ctx, cart))

	require.NoError(t, source.Clear(ctx, 1))
	require.NoError(t, source.Clear(ctx, 1))

	lines, err := source.Snapshot(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, lines)
}
