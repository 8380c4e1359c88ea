package domain

// SearchHistoryEntry is one remembered text search. At most one entry exists
// per distinct normalized query; repeating a search refreshes its timestamp
// and result count instead of duplicating it.
type SearchHistoryEntry struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	Timestamp   int64  `json:"timestamp"` // unix milliseconds
	ResultCount int    `json:"result_count"`
}

// PopularSearchEntry is one row of the precomputed popular-searches list,
// ranked by descending count. It is read-only and independent of the
// per-session search history.
type PopularSearchEntry struct {
	ID       string `json:"id"`
	Query    string `json:"query"`
	Count    int    `json:"count"`
	Category string `json:"category,omitempty"`
}
