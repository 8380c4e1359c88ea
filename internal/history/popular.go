package history

import (
	"sort"

	"github.com/utafrali/discovery/internal/domain"
)

// defaultPopular is the precomputed popular-searches list shown as
// quick-search affordances. It is curated upstream, not derived from the
// per-session search history.
var defaultPopular = []domain.PopularSearchEntry{
	{ID: "pop-1", Query: "fresh milk", Count: 1520, Category: "dairy"},
	{ID: "pop-2", Query: "organic tomatoes", Count: 1284, Category: "vegetables"},
	{ID: "pop-3", Query: "wireless earbuds", Count: 1101, Category: "electronics"},
	{ID: "pop-4", Query: "running shoes", Count: 967, Category: "sports"},
	{ID: "pop-5", Query: "sweet apples", Count: 845, Category: "fruits"},
	{ID: "pop-6", Query: "coffee beans", Count: 712, Category: "beverages"},
	{ID: "pop-7", Query: "hand cream", Count: 538, Category: "beauty"},
	{ID: "pop-8", Query: "notebook", Count: 420, Category: "stationery"},
}

// Popular returns the ranked popular-searches list, descending by count.
func Popular() []domain.PopularSearchEntry {
	out := make([]domain.PopularSearchEntry, len(defaultPopular))
	copy(out, defaultPopular)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
