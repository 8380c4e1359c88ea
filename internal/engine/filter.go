package engine

import (
	"strings"

	"github.com/utafrali/discovery/internal/domain"
)

// Matches reports whether a single record satisfies the given criteria. It is
// a pure function: no side effects, no mutation of either argument. The text
// stage is evaluated first, then each active facet; all stages AND together.
// A record missing an optional field fails an active facet rather than
// erroring (e.g. OnSale against a record with no discount).
func Matches(r domain.Record, c domain.Criteria) bool {
	if !matchesText(r, c.Query) {
		return false
	}

	if len(c.Categories) > 0 && !containsString(c.Categories, r.Category) {
		return false
	}

	if r.Price < c.PriceRange.Min || r.Price > c.PriceRange.Max {
		return false
	}

	if r.Rating < c.MinRating {
		return false
	}

	switch c.Availability {
	case domain.AvailabilityInStock:
		if r.Stock <= 0 {
			return false
		}
	case domain.AvailabilityOutOfStock:
		if r.Stock > 0 {
			return false
		}
	}

	switch c.Shipping {
	case domain.ShippingFree:
		if !r.FreeShipping {
			return false
		}
	case domain.ShippingPaid:
		if r.FreeShipping {
			return false
		}
	}

	if c.OnSale && !r.OnSale() {
		return false
	}

	if c.NewArrivals && !r.IsNew {
		return false
	}

	if c.HighRated && r.Rating < domain.HighRatedThreshold {
		return false
	}

	if len(c.Statuses) > 0 && !containsString(c.Statuses, r.OrderStatus) {
		return false
	}

	return true
}

// matchesText checks the normalized query against name, description, and
// tags, case-insensitive. An empty query always passes.
func matchesText(r domain.Record, query string) bool {
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
