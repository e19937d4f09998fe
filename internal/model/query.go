package model

// SearchFilters is the query shape accepted by the company search engine.
// Query is free text; every other field is a strict AND filter.
type SearchFilters struct {
	Query          string   `json:"query,omitempty"`
	RevenueRange   []string `json:"revenueRange,omitempty"`
	FleetSizeRange []string `json:"fleetSizeRange,omitempty"`
	ValuationRange []string `json:"valuationRange,omitempty"`
	Geography      []string `json:"geography,omitempty"`
	Products       []string `json:"products,omitempty"`
	Ownership      []string `json:"ownership,omitempty"`
	MinRevenue     *float64 `json:"minRevenue,omitempty"`
	MaxRevenue     *float64 `json:"maxRevenue,omitempty"`
	MinFleetSize   *float64 `json:"minFleetSize,omitempty"`
	MaxFleetSize   *float64 `json:"maxFleetSize,omitempty"`
}

// SearchResult is one scored entry in a company search response.
type SearchResult struct {
	Company       *CompanyEntity `json:"company"`
	Score         float64        `json:"score"`
	MatchedFields []string       `json:"matchedFields"`
}

// FileSearchFilters narrows and bonuses a file search.
type FileSearchFilters struct {
	Companies []string `json:"companies,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// FileSearchQuery is the query shape accepted by the file search scorer.
type FileSearchQuery struct {
	Query   string             `json:"query"`
	Filters *FileSearchFilters `json:"filters,omitempty"`
}

// FileSearchResult is one scored file entry.
type FileSearchResult struct {
	CSVFileMetadata
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
}
