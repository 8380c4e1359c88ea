package domain

// Sort fields.
const (
	SortRelevance  = "relevance"
	SortDate       = "date"
	SortPrice      = "price"
	SortAmount     = "amount"
	SortRating     = "rating"
	SortPopularity = "popularity"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec names the field to order by and the direction. Relevance with no
// active text query is a no-op: the input order is preserved.
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// DefaultSort returns the sort applied when the caller specifies none.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortRelevance, Direction: SortAsc}
}

// ValidSortFields returns the accepted sort fields.
func ValidSortFields() []string {
	return []string{SortRelevance, SortDate, SortPrice, SortAmount, SortRating, SortPopularity}
}

// IsValidSortField checks whether the given field is an accepted sort field.
func IsValidSortField(field string) bool {
	for _, f := range ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}
