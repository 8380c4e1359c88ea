package engine

import (
	"context"
	"log/slog"

	"github.com/utafrali/discovery/internal/domain"
)

// HistoryRecorder receives completed text searches. Implemented by the
// history store; nil disables recording.
type HistoryRecorder interface {
	Record(query string, resultCount int)
}

// Executor runs the fixed discovery pipeline: text filter, then facet
// filters, then sort. The pipeline order is observable (sorting before
// filtering would change tie-break behavior) and must not change.
type Executor struct {
	history HistoryRecorder
	logger  *slog.Logger
}

// NewExecutor creates a query executor. history may be nil.
func NewExecutor(history HistoryRecorder, logger *slog.Logger) *Executor {
	return &Executor{
		history: history,
		logger:  logger,
	}
}

// Execute filters and orders a catalog snapshot. The snapshot is never
// mutated; calling Execute twice over an unchanged snapshot with the same
// arguments yields an identical ordered result. As a side effect, a non-empty
// text query is recorded into the history store exactly once, after the
// result set has been produced. Facet-only refinements (empty query) are not
// recorded.
func (e *Executor) Execute(ctx context.Context, snapshot []domain.Record, criteria domain.Criteria, spec domain.SortSpec) []domain.Record {
	criteria.Query = domain.NormalizeQuery(criteria.Query)

	matched := make([]domain.Record, 0, len(snapshot))
	for _, r := range snapshot {
		if Matches(r, criteria) {
			matched = append(matched, r)
		}
	}

	ordered := Sort(matched, spec)

	if criteria.Query != "" && e.history != nil {
		e.history.Record(criteria.Query, len(ordered))
	}

	e.logger.DebugContext(ctx, "query executed",
		slog.String("query", criteria.Query),
		slog.Int("scanned", len(snapshot)),
		slog.Int("matched", len(ordered)),
		slog.String("sort_field", spec.Field),
		slog.String("sort_direction", spec.Direction),
	)

	return ordered
}
