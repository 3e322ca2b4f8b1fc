package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts a small catalogue and returns it.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	seed := []struct {
		name     string
		price    string
		category string
		gender   string
	}{
		{"Oxford Shirt", "39.99", "Top Wear", "Men"},
		{"Linen Shirt", "29.99", "Top Wear", "Men"},
		{"Chino Trousers", "49.50", "Bottom Wear", "Men"},
		{"Wrap Dress", "59.00", "Top Wear", "Women"},
		{"Denim Skirt", "35.00", "Bottom Wear", "Women"},
	}

	products := make([]model.Product, 0, len(seed))
	for i, s := range seed {
		created := now.Add(-time.Duration(i) * time.Minute)
		products = append(products, model.Product{
			ID:           uuid.New(),
			Name:         s.name,
			Description:  s.name + " description",
			Price:        decimal.RequireFromString(s.price),
			CountInStock: 10,
			SKU:          fmt.Sprintf("SKU-%03d", i+1),
			Category:     s.category,
			Gender:       s.gender,
			Sizes:        []string{"S", "M", "L"},
			Colors:       []string{"Blue"},
			Collections:  "Core",
			Images:       []model.ProductImage{{URL: "https://img.example.com/" + uuid.NewString() + ".png"}},
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}

	repo := repository.NewProductRepository(pool, zerolog.Nop())
	if err := repo.CreateMany(ctx, products); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}

	return products
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "checkout_sessions", "carts", "products", "users", "subscribers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
