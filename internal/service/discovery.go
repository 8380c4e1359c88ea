package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/discovery/internal/catalog"
	"github.com/utafrali/discovery/internal/domain"
	"github.com/utafrali/discovery/internal/engine"
	"github.com/utafrali/discovery/internal/history"
)

// DiscoveryService implements the business logic behind the discovery
// endpoints: it pulls a catalog snapshot, runs the query executor over it,
// and exposes the search history and popular searches.
type DiscoveryService struct {
	catalog  catalog.Provider
	executor *engine.Executor
	history  *history.Store
	logger   *slog.Logger
}

// NewDiscoveryService creates a discovery service.
func NewDiscoveryService(provider catalog.Provider, executor *engine.Executor, store *history.Store, logger *slog.Logger) *DiscoveryService {
	return &DiscoveryService{
		catalog:  provider,
		executor: executor,
		history:  store,
		logger:   logger,
	}
}

// SearchResult holds an ordered result set.
type SearchResult struct {
	Records []domain.Record `json:"records"`
	Total   int             `json:"total"`
	TookMs  int64           `json:"took_ms"`
}

// SearchProducts filters and orders the product catalog.
func (s *DiscoveryService) SearchProducts(ctx context.Context, criteria domain.Criteria, spec domain.SortSpec) (*SearchResult, error) {
	snapshot, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return s.execute(ctx, snapshot, criteria, spec), nil
}

// SearchOrders filters and orders the order catalog.
func (s *DiscoveryService) SearchOrders(ctx context.Context, criteria domain.Criteria, spec domain.SortSpec) (*SearchResult, error) {
	snapshot, err := s.catalog.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return s.execute(ctx, snapshot, criteria, spec), nil
}

func (s *DiscoveryService) execute(ctx context.Context, snapshot []domain.Record, criteria domain.Criteria, spec domain.SortSpec) *SearchResult {
	if spec.Field == "" {
		spec = domain.DefaultSort()
	}
	if spec.Direction == "" {
		spec.Direction = domain.SortAsc
	}

	start := time.Now()
	ordered := s.executor.Execute(ctx, snapshot, criteria, spec)
	tookMs := time.Since(start).Milliseconds()

	s.logger.DebugContext(ctx, "discovery search executed",
		slog.String("query", criteria.Query),
		slog.Int("total", len(ordered)),
		slog.Int64("took_ms", tookMs),
	)

	return &SearchResult{
		Records: ordered,
		Total:   len(ordered),
		TookMs:  tookMs,
	}
}

// History returns the remembered searches, most recent first.
func (s *DiscoveryService) History(ctx context.Context) []domain.SearchHistoryEntry {
	return s.history.List()
}

// ClearHistory empties the search history.
func (s *DiscoveryService) ClearHistory(ctx context.Context) {
	s.history.Clear()
	s.logger.InfoContext(ctx, "search history cleared")
}

// PopularSearches returns the ranked popular-searches list.
func (s *DiscoveryService) PopularSearches(ctx context.Context) []domain.PopularSearchEntry {
	return history.Popular()
}
