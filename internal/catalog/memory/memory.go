package memory

import (
	"context"
	"sync"

	"github.com/utafrali/discovery/internal/domain"
)

// Provider is an in-memory catalog provider. Records keep insertion order so
// that relevance-sorted results are deterministic across identical queries.
// Thread-safe via sync.RWMutex; product events mutate it while HTTP requests
// read snapshots.
type Provider struct {
	mu       sync.RWMutex
	products []domain.Record
	index    map[string]int
	orders   []domain.Record
}

// New creates an empty in-memory catalog provider.
func New() *Provider {
	return &Provider{
		index: make(map[string]int),
	}
}

// Seed replaces the full product and order lists.
func (p *Provider) Seed(products, orders []domain.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.products = make([]domain.Record, len(products))
	copy(p.products, products)
	p.index = make(map[string]int, len(products))
	for i, r := range p.products {
		p.index[r.ID] = i
	}

	p.orders = make([]domain.Record, len(orders))
	copy(p.orders, orders)
}

// UpsertProduct adds a product or replaces an existing one in place, keeping
// its catalog position.
func (p *Provider) UpsertProduct(r domain.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i, ok := p.index[r.ID]; ok {
		p.products[i] = r
		return
	}
	p.index[r.ID] = len(p.products)
	p.products = append(p.products, r)
}

// DeleteProduct removes a product by ID. Unknown IDs are a no-op.
func (p *Provider) DeleteProduct(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i, ok := p.index[id]
	if !ok {
		return
	}
	p.products = append(p.products[:i], p.products[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.products); j++ {
		p.index[p.products[j].ID] = j
	}
}

// Products returns a copy of the product list in catalog order.
func (p *Provider) Products(_ context.Context) ([]domain.Record, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Record, len(p.products))
	copy(out, p.products)
	return out, nil
}

// Orders returns a copy of the order list in catalog order.
func (p *Provider) Orders(_ context.Context) ([]domain.Record, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Record, len(p.orders))
	copy(out, p.orders)
	return out, nil
}
