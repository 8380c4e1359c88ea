package domain

// Record is a single searchable catalog entry: either a product or a past
// order. The discovery engine treats it as read-only; optional fields are
// pointers so that "absent" is distinguishable from a zero value.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`

	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Stock         int      `json:"stock"`
	IsNew         bool     `json:"is_new"`
	FreeShipping  bool     `json:"free_shipping"`
	Discount      *float64 `json:"discount,omitempty"`

	// CreatedAt is the product listing date; OrderDate and the remaining
	// fields are populated on order records only.
	CreatedAt   string   `json:"created_at,omitempty"`
	OrderStatus string   `json:"order_status,omitempty"`
	OrderDate   string   `json:"order_date,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
}

// SortDate returns the date used by date-ordered sorts: the order date for
// order records, the listing date otherwise.
func (r Record) SortDate() string {
	if r.OrderDate != "" {
		return r.OrderDate
	}
	return r.CreatedAt
}

// Amount returns the order total, or 0 when the record carries none.
func (r Record) Amount() float64 {
	if r.TotalAmount == nil {
		return 0
	}
	return *r.TotalAmount
}

// OnSale reports whether the record carries an active discount.
func (r Record) OnSale() bool {
	return r.Discount != nil && *r.Discount > 0
}
