package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCriteria_Defaults(t *testing.T) {
	c := NewCriteria()

	assert.Empty(t, c.Query)
	assert.Empty(t, c.Categories)
	assert.Zero(t, c.PriceRange.Min)
	assert.True(t, math.IsInf(c.PriceRange.Max, 1), "default max price is unbounded")
	assert.Zero(t, c.MinRating)
	assert.Equal(t, AvailabilityAll, c.Availability)
	assert.Equal(t, ShippingAll, c.Shipping)
	assert.False(t, c.OnSale)
	assert.False(t, c.NewArrivals)
	assert.False(t, c.HighRated)
	assert.Empty(t, c.Statuses)
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Milk", "milk"},
		{"  Fresh MILK  ", "fresh milk"},
		{"fresh milk", "fresh milk"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuery(tt.in), "input %q", tt.in)
	}
}

func TestValidFilterValues(t *testing.T) {
	assert.Equal(t, []string{"all", "in_stock", "out_of_stock"}, ValidAvailabilities())
	assert.Equal(t, []string{"all", "free", "paid"}, ValidShippings())
}

func TestRecord_SortDate(t *testing.T) {
	product := Record{CreatedAt: "2025-01-15"}
	assert.Equal(t, "2025-01-15", product.SortDate())

	order := Record{CreatedAt: "2025-01-15", OrderDate: "2025-03-01"}
	assert.Equal(t, "2025-03-01", order.SortDate(), "order date wins when present")

	assert.Empty(t, Record{}.SortDate())
}

func TestRecord_Amount(t *testing.T) {
	amount := 42.50
	assert.Equal(t, 42.50, Record{TotalAmount: &amount}.Amount())
	assert.Zero(t, Record{}.Amount())
}

func TestRecord_OnSale(t *testing.T) {
	assert.False(t, Record{}.OnSale())

	zero := 0.0
	assert.False(t, Record{Discount: &zero}.OnSale())

	pct := 15.0
	assert.True(t, Record{Discount: &pct}.OnSale())
}
