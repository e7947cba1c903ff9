package postgres

import (
	"context"
	"errors"
	"fmt"

	"artesano-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

const productColumns = `id, name, slug, description, category, price, sale_price, image, is_active, created_at, updated_at`

// GetCatalog returns all active products in catalog order. The whole catalog
// is assumed to fit in memory; filtering happens in the search usecase.
func (r *catalogRepository) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM products WHERE is_active = TRUE ORDER BY created_at, id`, productColumns))
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog rows: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM products WHERE id = $1`, productColumns), id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetching product %s: %w", id, err)
	}

	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.SalePrice,
		&p.Image,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
