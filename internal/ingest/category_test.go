package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Category
	}{
		{"company data", "01_samsara_company_data.csv", CategoryProfile},
		{"profile", "samsara_profile.csv", CategoryProfile},
		{"overview", "10_market_overview.csv", CategoryProfile},
		{"financial", "03_samsara_financial_metrics.csv", CategoryFinancial},
		{"revenue", "04_geotab_revenue_history.csv", CategoryFinancial},
		{"customer", "02_geotab_customer_references.csv", CategoryCustomer},
		{"partnership", "05_motive_partnerships.csv", CategoryPartnership},
		{"acquisition", "06_verizon_acquisitions.csv", CategoryAcquisition},
		{"vendor", "07_telematics_vendors.csv", CategoryVendor},
		{"operator", "08_fleet_operators.csv", CategoryVendor},
		{"pricing", "09_pricing_comparison.csv", CategoryPricing},
		{"fallthrough", "99_misc_notes.csv", CategoryGeneric},
		// Priority: financial outranks customer in the dispatch order.
		{"revenue beats customer", "11_customer_revenue_split.csv", CategoryFinancial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.filename))
		})
	}
}

// Every category rule resolves to a registered extractor, and the generic
// fallback exists. Guards the dispatch table against drift.
func TestDispatchTableExhaustive(t *testing.T) {
	for _, rule := range categoryRules {
		assert.Contains(t, extractors, rule.category, "category %s has no extractor", rule.category)
	}
	assert.Contains(t, extractors, CategoryGeneric)
}

func TestCompanyFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"customer prefix", "02_geotab_customer_references.csv", "Geotab"},
		{"company prefix", "samsara_company_data.csv", "Samsara"},
		{"partnership prefix", "05_motive_partnership_list.csv", "Motive"},
		{"acquisition prefix", "verizon_acquisition_history.csv", "Verizon"},
		{"no pattern", "pricing_comparison.csv", ""},
		{"xlsx", "03_lytx_customer_wins.xlsx", "Lytx"},
		{"ordinal only before customer", "02_customer_data.csv", ""},
		{"ordinal only before partnership", "05_partnership_news.csv", ""},
		{"bare customer file", "customer_wins.csv", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyFromFilename(tt.filename))
		})
	}
}
