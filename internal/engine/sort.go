package engine

import (
	"sort"
	"time"

	"github.com/utafrali/discovery/internal/domain"
)

// dateLayouts are tried in order when parsing record dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Sort returns a new slice ordered by the given spec; the input is not
// mutated. The sort is stable: records the comparator considers equal keep
// their relative order, so re-sorting an already ordered list does not
// reshuffle equal-ranked items. Relevance (and an unknown field) preserves
// the input order entirely.
func Sort(records []domain.Record, spec domain.SortSpec) []domain.Record {
	out := make([]domain.Record, len(records))
	copy(out, records)

	if spec.Field == "" || spec.Field == domain.SortRelevance {
		return out
	}

	desc := spec.Direction == domain.SortDesc

	switch spec.Field {
	case domain.SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByDate(out[i], out[j], desc)
		})
	case domain.SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByNumber(out[i].Price, out[j].Price, desc)
		})
	case domain.SortAmount:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByNumber(out[i].Amount(), out[j].Amount(), desc)
		})
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByNumber(out[i].Rating, out[j].Rating, desc)
		})
	case domain.SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return lessByNumber(float64(out[i].ReviewCount), float64(out[j].ReviewCount), desc)
		})
	}

	return out
}

// lessByDate compares parsed timestamps. A record whose date is missing or
// unparseable sorts after every valid one regardless of direction; two
// invalid dates compare equal and keep their original order.
func lessByDate(a, b domain.Record, desc bool) bool {
	ta, okA := parseDate(a.SortDate())
	tb, okB := parseDate(b.SortDate())

	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	if ta.Equal(tb) {
		return false
	}
	if desc {
		return ta.After(tb)
	}
	return ta.Before(tb)
}

func lessByNumber(a, b float64, desc bool) bool {
	if a == b {
		return false
	}
	if desc {
		return a > b
	}
	return a < b
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
