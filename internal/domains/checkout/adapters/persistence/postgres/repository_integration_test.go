//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
	"github.com/Apurer/go-shop-api/internal/platform/migrations"
)

func setupOrderPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func sampleOrder(t *testing.T, userID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(userID, []domain.OrderLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 9.99},
		{ProductID: 2, Quantity: 1, UnitPrice: 4.50},
	}, time.Now().UTC())
	require.NoError(t, err)
	return order
}

func TestRepository_AppendAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	stored, err := repo.Append(ctx, sampleOrder(t, 7))
	require.NoError(t, err)
	require.NotZero(t, stored.ID)

	fetched, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), fetched.UserID)
	assert.Equal(t, domain.StatusCompleted, fetched.Status)
	require.Len(t, fetched.Lines, 2)
	assert.Equal(t, 9.99, fetched.Lines[0].UnitPrice)
	assert.InDelta(t, 9.99*2+4.50, fetched.Total, 1e-9)
}

func TestRepository_GetByID_Unknown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestRepository_ListByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sampleOrder(t, 2))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sampleOrder(t, 1))
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Less(t, orders[0].ID, orders[1].ID)
}
