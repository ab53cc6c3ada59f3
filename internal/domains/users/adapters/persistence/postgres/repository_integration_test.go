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

	"github.com/Apurer/go-shop-api/internal/domains/users/domain"
	"github.com/Apurer/go-shop-api/internal/domains/users/ports"
	"github.com/Apurer/go-shop-api/internal/platform/migrations"
)

func setupUserPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func sampleUser(t *testing.T, id int64, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, "Ada", email)
	require.NoError(t, err)
	user.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	return user
}

func TestRepository_SaveAndGetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUserPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, sampleUser(t, 1, "ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	fetched, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", fetched.Email)
}

func TestRepository_DuplicateEmailRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUserPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleUser(t, 1, "ada@example.com"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, sampleUser(t, 2, "ada@example.com"))
	assert.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestSessionStore_SaveDeletePurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUserPostgresContainer(t)
	defer cleanup()

	store := NewSessionStoreWithTTL(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ada@example.com", "token-1"))
	require.NoError(t, store.Save(ctx, "ada@example.com", "token-2"))
	require.NoError(t, store.Delete(ctx, "ada@example.com"))
	require.NoError(t, store.Delete(ctx, "ada@example.com"))

	// An already expired store purges everything it wrote.
	expired := NewSessionStoreWithTTL(db, time.Nanosecond)
	require.NoError(t, expired.Save(ctx, "old@example.com", "stale"))
	time.Sleep(10 * time.Millisecond)
	purged, err := expired.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
