package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/utafrali/discovery/internal/domain"
	"github.com/utafrali/discovery/pkg/database"
)

// CatalogProvider implements catalog.Provider on PostgreSQL. It reads the
// full product and order lists; filtering and sorting stay in the engine so
// behavior is identical across providers.
type CatalogProvider struct {
	pool database.DBTX
}

// NewCatalogProvider creates a PostgreSQL-backed catalog provider.
func NewCatalogProvider(pool database.DBTX) *CatalogProvider {
	return &CatalogProvider{pool: pool}
}

// Products returns all products in catalog order (insertion order by
// created_at, then id for determinism).
func (p *CatalogProvider) Products(ctx context.Context) ([]domain.Record, error) {
	query := `
		SELECT id, name, description, tags, category, price, original_price,
		       rating, review_count, stock, is_new, free_shipping, discount, created_at
		FROM products
		ORDER BY created_at, id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			r         domain.Record
			createdAt time.Time
		)
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Description,
			&r.Tags,
			&r.Category,
			&r.Price,
			&r.OriginalPrice,
			&r.Rating,
			&r.ReviewCount,
			&r.Stock,
			&r.IsNew,
			&r.FreeShipping,
			&r.Discount,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return records, nil
}

// Orders returns all orders in catalog order.
func (p *CatalogProvider) Orders(ctx context.Context) ([]domain.Record, error) {
	query := `
		SELECT id, summary, status, order_date, total_amount
		FROM orders
		ORDER BY order_date, id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			r         domain.Record
			orderDate time.Time
		)
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.OrderStatus,
			&orderDate,
			&r.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		r.OrderDate = orderDate.UTC().Format(time.RFC3339)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return records, nil
}
