package model

import "time"

// CompanyEntity is the canonical company record assembled from every source
// row and file that resolves to the same normalized name.
type CompanyEntity struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      []string      `json:"category"`
	Keywords      []string      `json:"keywords"`
	Metrics       Metrics       `json:"metrics"`
	Geography     Geography     `json:"geography"`
	Business      Business      `json:"business"`
	Financials    Financials    `json:"financials"`
	Relationships Relationships `json:"relationships"`
	SourceFiles   []string      `json:"sourceFiles"`
	LastUpdated   time.Time     `json:"lastUpdated"`
}

// Metrics holds numeric company metrics and their derived tier labels.
// A tier label is present iff the underlying numeric metric is present.
type Metrics struct {
	Revenue        *float64 `json:"revenue,omitempty"`
	FleetSize      *float64 `json:"fleetSize,omitempty"`
	Valuation      *float64 `json:"valuation,omitempty"`
	Employees      *float64 `json:"employees,omitempty"`
	Customers      *float64 `json:"customers,omitempty"`
	MarketCap      *float64 `json:"marketCap,omitempty"`
	RevenueRange   string   `json:"revenueRange,omitempty"`
	FleetSizeRange string   `json:"fleetSizeRange,omitempty"`
	ValuationRange string   `json:"valuationRange,omitempty"`
}

// Geography holds headquarters plus accumulating market/region lists.
// Markets and Regions are append-only and intentionally not deduplicated.
type Geography struct {
	Headquarters string   `json:"headquarters,omitempty"`
	Markets      []string `json:"markets,omitempty"`
	Regions      []string `json:"regions,omitempty"`
}

// Business holds descriptive company attributes.
type Business struct {
	Industry    string   `json:"industry,omitempty"`
	Vertical    string   `json:"vertical,omitempty"`
	Products    []string `json:"products,omitempty"`
	Ownership   string   `json:"ownership,omitempty"`
	StockSymbol string   `json:"stockSymbol,omitempty"`
	Founded     *int     `json:"founded,omitempty"`
}

// Financials is a second view of financial figures, kept independently of
// Metrics.Revenue (the two are populated by different extractors).
type Financials struct {
	Revenue    *float64 `json:"revenue,omitempty"`
	GrowthRate *float64 `json:"growthRate,omitempty"`
	EBITDA     *float64 `json:"ebitda,omitempty"`
	ARR        *float64 `json:"arr,omitempty"`
}

// Relationships holds company-to-company links. Customers, Partners, and
// Acquisitions are deduplicated on insert by exact string equality.
// Investors is defined in the schema but populated by no extractor and stays
// empty by construction.
type Relationships struct {
	Customers    []string `json:"customers"`
	Partners     []string `json:"partners"`
	Acquisitions []string `json:"acquisitions"`
	Investors    []string `json:"investors"`
}

// HasRevenue reports whether the entity carries a revenue metric.
func (e *CompanyEntity) HasRevenue() bool { return e.Metrics.Revenue != nil }

// HasFleetSize reports whether the entity carries a fleet-size metric.
func (e *CompanyEntity) HasFleetSize() bool { return e.Metrics.FleetSize != nil }

// HasValuation reports whether the entity carries a valuation metric.
func (e *CompanyEntity) HasValuation() bool { return e.Metrics.Valuation != nil }
