package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema and returns a pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// now returns the current time at the precision PostgreSQL stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newTestProduct(name, category, gender, price string, createdAt time.Time) model.Product {
	return model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		SKU:         "SKU-" + name,
		Category:    category,
		Gender:      gender,
		Sizes:       []string{"S", "M"},
		Colors:      []string{"Red"},
		Collections: "Summer",
		Images:      []model.ProductImage{{URL: "https://img.example.com/" + name + ".png"}},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
