// Package catalog defines the catalog provider contract. A provider supplies
// the fully materialized in-memory record lists the query executor filters
// and sorts; the engine never paginates or caches them itself.
package catalog

import (
	"context"

	"github.com/utafrali/discovery/internal/domain"
)

// Provider supplies catalog snapshots. Implementations may serve from memory,
// PostgreSQL, or any other source; the returned slices are owned by the
// caller.
type Provider interface {
	// Products returns the full product list in catalog order.
	Products(ctx context.Context) ([]domain.Record, error)

	// Orders returns the full order list in catalog order.
	Orders(ctx context.Context) ([]domain.Record, error)
}
