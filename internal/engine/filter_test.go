package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/discovery/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func baseProduct() domain.Record {
	return domain.Record{
		ID:          "p-1",
		Name:        "Fresh Milk",
		Description: "Whole milk from local farms",
		Tags:        []string{"dairy", "breakfast"},
		Category:    "dairy",
		Price:       2.49,
		Rating:      4.2,
		ReviewCount: 87,
		Stock:       12,
	}
}

func TestMatches_EmptyCriteriaAcceptsEverything(t *testing.T) {
	assert.True(t, Matches(baseProduct(), domain.NewCriteria()))
	assert.True(t, Matches(domain.Record{}, domain.NewCriteria()))
}

func TestMatches_TextQuery(t *testing.T) {
	names := []string{"Fresh Organic Tomatoes", "Fresh Milk", "Sweet Apples"}

	c := domain.NewCriteria()
	c.Query = "milk"

	var matched []string
	for _, name := range names {
		r := domain.Record{ID: name, Name: name}
		if Matches(r, c) {
			matched = append(matched, name)
		}
	}

	assert.Equal(t, []string{"Fresh Milk"}, matched)
}

func TestMatches_TextQuery_CaseInsensitive(t *testing.T) {
	r := baseProduct()
	r.Name = "Fresh MILK"

	c := domain.NewCriteria()
	c.Query = "milk"
	assert.True(t, Matches(r, c))
}

func TestMatches_TextQuery_Description(t *testing.T) {
	r := baseProduct()

	c := domain.NewCriteria()
	c.Query = "local farms"
	assert.True(t, Matches(r, c))
}

func TestMatches_TextQuery_Tags(t *testing.T) {
	r := baseProduct()

	c := domain.NewCriteria()
	c.Query = "breakfast"
	assert.True(t, Matches(r, c))

	c.Query = "garden"
	assert.False(t, Matches(r, c))
}

func TestMatches_Categories_OrComposed(t *testing.T) {
	c := domain.NewCriteria()
	c.Categories = []string{"dairy", "bakery"}

	inDairy := baseProduct()
	assert.True(t, Matches(inDairy, c))

	inBakery := baseProduct()
	inBakery.Category = "bakery"
	assert.True(t, Matches(inBakery, c))

	elsewhere := baseProduct()
	elsewhere.Category = "electronics"
	assert.False(t, Matches(elsewhere, c))
}

func TestMatches_PriceRange_InclusiveBounds(t *testing.T) {
	c := domain.NewCriteria()
	c.PriceRange = domain.PriceRange{Min: 1.00, Max: 2.49}

	atMax := baseProduct()
	assert.True(t, Matches(atMax, c), "price == max passes")

	overMax := baseProduct()
	overMax.Price = 2.50
	assert.False(t, Matches(overMax, c), "price just over max fails")

	atMin := baseProduct()
	atMin.Price = 1.00
	assert.True(t, Matches(atMin, c), "price == min passes")

	underMin := baseProduct()
	underMin.Price = 0.99
	assert.False(t, Matches(underMin, c))
}

func TestMatches_PriceRange_MinAboveMaxMatchesNothing(t *testing.T) {
	// Permissive by design: an inverted range yields an empty result, not an error.
	c := domain.NewCriteria()
	c.PriceRange = domain.PriceRange{Min: 10, Max: 5}

	assert.False(t, Matches(baseProduct(), c))
}

func TestMatches_MinRating_Boundary(t *testing.T) {
	c := domain.NewCriteria()
	c.MinRating = 4.2

	assert.True(t, Matches(baseProduct(), c))

	below := baseProduct()
	below.Rating = 4.1
	assert.False(t, Matches(below, c))
}

func TestMatches_Availability(t *testing.T) {
	inStock := baseProduct()
	outOfStock := baseProduct()
	outOfStock.Stock = 0

	c := domain.NewCriteria()
	c.Availability = domain.AvailabilityInStock
	assert.True(t, Matches(inStock, c))
	assert.False(t, Matches(outOfStock, c))

	c.Availability = domain.AvailabilityOutOfStock
	assert.False(t, Matches(inStock, c))
	assert.True(t, Matches(outOfStock, c))

	c.Availability = domain.AvailabilityAll
	assert.True(t, Matches(inStock, c))
	assert.True(t, Matches(outOfStock, c))
}

func TestMatches_Shipping(t *testing.T) {
	free := baseProduct()
	free.FreeShipping = true
	paid := baseProduct()

	c := domain.NewCriteria()
	c.Shipping = domain.ShippingFree
	assert.True(t, Matches(free, c))
	assert.False(t, Matches(paid, c))

	c.Shipping = domain.ShippingPaid
	assert.False(t, Matches(free, c))
	assert.True(t, Matches(paid, c))
}

func TestMatches_OnSale_MissingDiscountExcluded(t *testing.T) {
	c := domain.NewCriteria()
	c.OnSale = true

	noDiscount := baseProduct()
	assert.False(t, Matches(noDiscount, c), "record without a discount field is excluded, not an error")

	zeroDiscount := baseProduct()
	zeroDiscount.Discount = floatPtr(0)
	assert.False(t, Matches(zeroDiscount, c))

	discounted := baseProduct()
	discounted.Discount = floatPtr(15)
	assert.True(t, Matches(discounted, c))
}

func TestMatches_NewArrivals(t *testing.T) {
	c := domain.NewCriteria()
	c.NewArrivals = true

	assert.False(t, Matches(baseProduct(), c))

	fresh := baseProduct()
	fresh.IsNew = true
	assert.True(t, Matches(fresh, c))
}

func TestMatches_HighRated_Boundary(t *testing.T) {
	c := domain.NewCriteria()
	c.HighRated = true

	at := baseProduct()
	at.Rating = 4.5
	assert.True(t, Matches(at, c))

	below := baseProduct()
	below.Rating = 4.4
	assert.False(t, Matches(below, c))
}

func TestMatches_Flags_AndComposed(t *testing.T) {
	c := domain.NewCriteria()
	c.OnSale = true
	c.HighRated = true

	both := baseProduct()
	both.Discount = floatPtr(20)
	both.Rating = 4.8
	assert.True(t, Matches(both, c))

	onlySale := baseProduct()
	onlySale.Discount = floatPtr(20)
	assert.False(t, Matches(onlySale, c))

	onlyRated := baseProduct()
	onlyRated.Rating = 4.8
	assert.False(t, Matches(onlyRated, c))
}

func TestMatches_OrderStatuses_OrComposed(t *testing.T) {
	c := domain.NewCriteria()
	c.Statuses = []string{"shipped", "delivered"}

	shipped := domain.Record{ID: "o-1", Name: "Order #1001", OrderStatus: "shipped"}
	assert.True(t, Matches(shipped, c))

	delivered := domain.Record{ID: "o-2", Name: "Order #1002", OrderStatus: "delivered"}
	assert.True(t, Matches(delivered, c))

	pending := domain.Record{ID: "o-3", Name: "Order #1003", OrderStatus: "pending"}
	assert.False(t, Matches(pending, c))
}

func TestMatches_TextAndFacetsCombined(t *testing.T) {
	c := domain.NewCriteria()
	c.Query = "milk"
	c.Categories = []string{"dairy"}
	c.PriceRange = domain.PriceRange{Min: 0, Max: 5}

	assert.True(t, Matches(baseProduct(), c))

	wrongText := baseProduct()
	wrongText.Name = "Sweet Apples"
	wrongText.Description = ""
	wrongText.Tags = nil
	assert.False(t, Matches(wrongText, c))

	wrongFacet := baseProduct()
	wrongFacet.Price = 9.99
	c.PriceRange.Max = 5
	assert.False(t, Matches(wrongFacet, c))
}
