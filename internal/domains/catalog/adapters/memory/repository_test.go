package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

func seed(t *testing.T, repo *Repository, id, stock int64) {
	t.Helper()
	product, err := domain.NewProduct(id, "product", "", 1.0, stock)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)
}

func TestConditionalDecrementStock_Boundary(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, 1, 3)
	ctx := context.Background()

	remaining, err := repo.ConditionalDecrementStock(ctx, 1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), remaining)

	_, err = repo.ConditionalDecrementStock(ctx, 1, 1)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
}

func TestConditionalDecrementStock_UnknownProduct(t *testing.T) {
	repo := NewRepository()
	_, err := repo.ConditionalDecrementStock(context.Background(), 9, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestConditionalDecrementStock_ConcurrentCallersNeverGoNegative(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, 1, 10)

	const workers = 40
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ConditionalDecrementStock(context.Background(), 1, 1)
			if err == nil {
				wins.Add(1)
			} else if !errors.Is(err, ports.ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(10), wins.Load())
	product, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), product.Stock)
}

func TestIncrementStock_RestoresUnits(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, 1, 2)
	ctx := context.Background()

	_, err := repo.ConditionalDecrementStock(ctx, 1, 2)
	require.NoError(t, err)
	restored, err := repo.IncrementStock(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), restored)
}

func TestCompareAndSwapStock_DetectsStaleReads(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, 1, 5)
	ctx := context.Background()

	swapped, err := repo.CompareAndSwapStock(ctx, 1, 5, 3)
	require.NoError(t, err)
	require.True(t, swapped)

	// The expected value is now stale.
	swapped, err = repo.CompareAndSwapStock(ctx, 1, 5, 1)
	require.NoError(t, err)
	require.False(t, swapped)
}

func TestSave_CloneIsolation(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	product, err := domain.NewProduct(0, "coffee", "", 2.0, 4)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	saved.Stock = 99
	reloaded, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), reloaded.Stock)
}
