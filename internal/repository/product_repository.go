package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, doc, created_at`

// scanProduct reads one row selected with productColumns.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p         model.Product
		id        uuid.UUID
		doc       []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &doc, &createdAt); err != nil {
		return nil, err
	}
	if err := decodeDoc(doc, &p); err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = createdAt
	return &p, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	doc, err := encodeDoc(product)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (id, doc, created_at) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(ctx, query, product.ID, doc, product.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")
	return nil
}

// CreateMany inserts products in a single batch.
func (r *productRepository) CreateMany(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `INSERT INTO products (id, doc, created_at) VALUES ($1, $2, $3)`

	batch := &pgx.Batch{}
	for i := range products {
		doc, err := encodeDoc(&products[i])
		if err != nil {
			return err
		}
		batch.Queue(query, products[i].ID, doc, products[i].CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range products {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("product_id", products[i].ID.String()).
				Msg("failed to insert product")
			return fmt.Errorf("failed to insert product %s: %w", products[i].ID, err)
		}
	}

	r.logger.Debug().Int("count", len(products)).Msg("products created successfully")
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Update replaces a product document.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	doc, err := encodeDoc(product)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, `UPDATE products SET doc = $2 WHERE id = $1`, product.ID, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteAll removes every product.
func (r *productRepository) DeleteAll(ctx context.Context) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete products")
		return fmt.Errorf("failed to delete products: %w", err)
	}

	r.logger.Info().Int64("count", tag.RowsAffected()).Msg("products deleted")
	return nil
}

// List retrieves products matching the filter.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query, args := buildProductQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collect(rows)
}

// buildProductQuery renders the filter as a parameterised SELECT.
func buildProductQuery(filter model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Collection != "" {
		conds = append(conds, "doc->>'collections' = "+arg(filter.Collection))
	}
	if filter.Category != "" {
		conds = append(conds, "doc->>'category' = "+arg(filter.Category))
	}
	if len(filter.Materials) > 0 {
		conds = append(conds, "doc->>'material' = ANY("+arg(filter.Materials)+")")
	}
	if len(filter.Brands) > 0 {
		conds = append(conds, "doc->>'brand' = ANY("+arg(filter.Brands)+")")
	}
	if len(filter.Sizes) > 0 {
		conds = append(conds, "doc->'sizes' ?| "+arg(filter.Sizes)+"::text[]")
	}
	if filter.Color != "" {
		conds = append(conds, "doc->'colors' ? "+arg(filter.Color)+"::text")
	}
	if filter.Gender != "" {
		conds = append(conds, "doc->>'gender' = "+arg(filter.Gender))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "(doc->>'price')::numeric >= "+arg(filter.MinPrice.String())+"::numeric")
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "(doc->>'price')::numeric <= "+arg(filter.MaxPrice.String())+"::numeric")
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(doc->>'name' ILIKE "+p+" OR doc->>'description' ILIKE "+p+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns + " FROM products")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	switch filter.SortBy {
	case model.SortPriceAsc:
		b.WriteString(" ORDER BY (doc->>'price')::numeric ASC, id")
	case model.SortPriceDesc:
		b.WriteString(" ORDER BY (doc->>'price')::numeric DESC, id")
	case model.SortPopularity:
		b.WriteString(" ORDER BY (doc->>'rating')::float8 DESC NULLS LAST, id")
	default:
		b.WriteString(" ORDER BY created_at, id")
	}

	if filter.Limit > 0 {
		b.WriteString(" LIMIT " + arg(filter.Limit))
	}

	return b.String(), args
}

// Similar retrieves other products sharing the product's gender and category.
func (r *productRepository) Similar(ctx context.Context, product *model.Product, limit int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id <> $1
		  AND doc->>'gender' = $2
		  AND doc->>'category' = $3
		ORDER BY created_at, id
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, product.ID, product.Gender, product.Category, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to query similar products")
		return nil, fmt.Errorf("failed to query similar products: %w", err)
	}

	return r.collect(rows)
}

// BestSeller retrieves the highest rated product.
func (r *productRepository) BestSeller(ctx context.Context) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY (doc->>'rating')::float8 DESC NULLS LAST, created_at
		LIMIT 1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query best seller")
		return nil, fmt.Errorf("failed to query best seller: %w", err)
	}

	return p, nil
}

// NewArrivals retrieves the most recently created products.
func (r *productRepository) NewArrivals(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query new arrivals")
		return nil, fmt.Errorf("failed to query new arrivals: %w", err)
	}

	return r.collect(rows)
}
