package domain

import (
	"math"
	"strings"
)

// Availability filter values.
const (
	AvailabilityAll        = "all"
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
)

// Shipping filter values.
const (
	ShippingAll  = "all"
	ShippingFree = "free"
	ShippingPaid = "paid"
)

// HighRatedThreshold is the minimum rating for the high-rated quick filter.
const HighRatedThreshold = 4.5

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Criteria describes one search/filter interaction: a normalized text query
// plus the active facets. Facet predicates are AND-composed; members of a
// multi-valued facet (Categories, Statuses) are OR-composed. A facet left at
// its default imposes no constraint.
type Criteria struct {
	Query        string     `json:"query"`
	Categories   []string   `json:"categories,omitempty"`
	PriceRange   PriceRange `json:"price_range"`
	MinRating    float64    `json:"min_rating"`
	Availability string     `json:"availability"`
	Shipping     string     `json:"shipping"`
	OnSale       bool       `json:"on_sale"`
	NewArrivals  bool       `json:"new_arrivals"`
	HighRated    bool       `json:"high_rated"`
	Statuses     []string   `json:"statuses,omitempty"`
}

// NewCriteria returns a Criteria with every facet in its no-constraint state.
func NewCriteria() Criteria {
	return Criteria{
		PriceRange:   PriceRange{Min: 0, Max: math.Inf(1)},
		Availability: AvailabilityAll,
		Shipping:     ShippingAll,
	}
}

// NormalizeQuery trims and case-folds a text query. An empty result means
// "no text filter".
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ValidAvailabilities returns the accepted availability filter values.
func ValidAvailabilities() []string {
	return []string{AvailabilityAll, AvailabilityInStock, AvailabilityOutOfStock}
}

// ValidShippings returns the accepted shipping filter values.
func ValidShippings() []string {
	return []string{ShippingAll, ShippingFree, ShippingPaid}
}
