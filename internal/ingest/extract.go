package ingest

import (
	"github.com/waylens/terminal/internal/classify"
	"github.com/waylens/terminal/internal/csvio"
	"github.com/waylens/terminal/internal/model"
)

// extractorFunc folds one source file's rows into the entity arena.
type extractorFunc func(r *Resolver, filename string, table *csvio.Table)

// extractors is the category dispatch table, computed once per filename at
// ingestion start via DetectCategory.
var extractors = map[Category]extractorFunc{
	CategoryProfile:     extractProfile,
	CategoryFinancial:   extractFinancial,
	CategoryCustomer:    relationshipExtractor(relCustomers),
	CategoryPartnership: relationshipExtractor(relPartners),
	CategoryAcquisition: relationshipExtractor(relAcquisitions),
	CategoryVendor:      extractVendor,
	CategoryPricing:     extractPricing,
	CategoryGeneric:     extractGeneric,
}

// extractProfile handles company-data/profile/overview files. Rows either
// carry Metric/Value pairs or direct attribute columns.
func extractProfile(r *Resolver, filename string, table *csvio.Table) {
	seenTags := map[string]bool{}
	for _, row := range table.Rows {
		name := firstValue(row, "Company", "company", "Metric")
		id, ok := r.Resolve(name)
		if !ok {
			continue
		}
		r.Mutate(id, func(e *model.CompanyEntity) {
			touchSource(e, filename)
			if metric := firstValue(row, "Metric"); metric != "" && row["Value"] != "" {
				applyMetricRules(e, metric, row["Value"])
			}
			applyAttributeColumns(e, row)
			addCategoryTag(e, row, seenTags)
		})
	}
}

// extractFinancial handles financial/revenue files. Revenue is written to
// both the metrics view and the financials view.
func extractFinancial(r *Resolver, filename string, table *csvio.Table) {
	for _, row := range table.Rows {
		name := firstValue(row, "Company", "company")
		id, ok := r.Resolve(name)
		if !ok {
			continue
		}
		r.Mutate(id, func(e *model.CompanyEntity) {
			touchSource(e, filename)
			if metric := firstValue(row, "Metric"); metric != "" && row["Value"] != "" {
				applyMetricRules(e, metric, row["Value"])
			}
			if v, ok := parseNumber(firstValue(row, "Revenue", "Annual Revenue", "FY Revenue")); ok {
				e.Metrics.Revenue = &v
				e.Metrics.RevenueRange = classify.Revenue(v)
				rev := v
				e.Financials.Revenue = &rev
			}
			if v, ok := parseNumber(firstValue(row, "Growth Rate", "Growth", "YoY Growth")); ok {
				e.Financials.GrowthRate = &v
			}
			if v, ok := parseNumber(firstValue(row, "EBITDA")); ok {
				e.Financials.EBITDA = &v
			}
			if v, ok := parseNumber(firstValue(row, "ARR")); ok {
				e.Financials.ARR = &v
			}
			if v, ok := parseNumber(firstValue(row, "Market Cap", "Market Capitalization")); ok {
				e.Metrics.MarketCap = &v
			}
			if v, ok := parseNumber(firstValue(row, "Valuation")); ok {
				e.Metrics.Valuation = &v
				e.Metrics.ValuationRange = classify.Valuation(v)
			}
		})
	}
}

// relTarget names the relationship list a file category feeds and the
// columns its rows are read from.
type relTarget struct {
	columns []string
	add     func(rel *model.Relationships, v string)
}

var (
	relCustomers = relTarget{
		columns: []string{"Customer", "Customer Name", "Client"},
		add: func(rel *model.Relationships, v string) {
			rel.Customers = appendUnique(rel.Customers, v)
		},
	}
	relPartners = relTarget{
		columns: []string{"Partner", "Partner Name", "Partnership"},
		add: func(rel *model.Relationships, v string) {
			rel.Partners = appendUnique(rel.Partners, v)
		},
	}
	relAcquisitions = relTarget{
		columns: []string{"Acquisition", "Acquired Company", "Target"},
		add: func(rel *model.Relationships, v string) {
			rel.Acquisitions = appendUnique(rel.Acquisitions, v)
		},
	}
)

// relationshipExtractor builds an extractor for customer, partnership, and
// acquisition files. The owning company comes from the filename prefix,
// falling back to a Company column per row.
func relationshipExtractor(target relTarget) extractorFunc {
	return func(r *Resolver, filename string, table *csvio.Table) {
		fileOwner := CompanyFromFilename(filename)
		for _, row := range table.Rows {
			owner := fileOwner
			if owner == "" {
				owner = firstValue(row, "Company", "company")
			}
			id, ok := r.Resolve(owner)
			if !ok {
				continue
			}
			value := firstValue(row, target.columns...)
			r.Mutate(id, func(e *model.CompanyEntity) {
				touchSource(e, filename)
				if value != "" {
					target.add(&e.Relationships, value)
				}
			})
		}
	}
}

// extractVendor handles vendor/operator files, where every row names a
// company in its own right.
func extractVendor(r *Resolver, filename string, table *csvio.Table) {
	seenTags := map[string]bool{}
	for _, row := range table.Rows {
		name := firstValue(row, "Company", "Vendor", "Operator", "company")
		id, ok := r.Resolve(name)
		if !ok {
			continue
		}
		r.Mutate(id, func(e *model.CompanyEntity) {
			touchSource(e, filename)
			applyAttributeColumns(e, row)
			addCategoryTag(e, row, seenTags)
		})
	}
}

// extractPricing handles pricing files: product/plan names accumulate on
// the company's product list.
func extractPricing(r *Resolver, filename string, table *csvio.Table) {
	for _, row := range table.Rows {
		name := firstValue(row, "Company", "company")
		id, ok := r.Resolve(name)
		if !ok {
			continue
		}
		product := firstValue(row, "Product", "Product Name", "Plan")
		r.Mutate(id, func(e *model.CompanyEntity) {
			touchSource(e, filename)
			if product != "" {
				e.Business.Products = appendUnique(e.Business.Products, product)
			}
		})
	}
}

// extractGeneric is the fallback for unrecognized filenames.
func extractGeneric(r *Resolver, filename string, table *csvio.Table) {
	for _, row := range table.Rows {
		name := firstValue(row, "Company", "company", "Metric")
		id, ok := r.Resolve(name)
		if !ok {
			continue
		}
		r.Mutate(id, func(e *model.CompanyEntity) {
			touchSource(e, filename)
			if metric := firstValue(row, "Metric"); metric != "" && row["Value"] != "" {
				applyMetricRules(e, metric, row["Value"])
			}
			applyAttributeColumns(e, row)
		})
	}
}

// applyAttributeColumns maps direct attribute columns onto the entity.
// Only understood columns are written; nothing is ever cleared.
func applyAttributeColumns(e *model.CompanyEntity, row csvio.Row) {
	if v, ok := parseNumber(firstValue(row, "Revenue", "Annual Revenue")); ok {
		e.Metrics.Revenue = &v
		e.Metrics.RevenueRange = classify.Revenue(v)
	}
	if v, ok := parseNumber(firstValue(row, "Fleet Size", "Fleet_Size", "Vehicles")); ok {
		setFleetSize(e, v)
	}
	if v, ok := parseNumber(firstValue(row, "Valuation")); ok {
		e.Metrics.Valuation = &v
		e.Metrics.ValuationRange = classify.Valuation(v)
	}
	if v, ok := parseNumber(firstValue(row, "Employees", "Employee Count")); ok {
		e.Metrics.Employees = &v
	}
	if v, ok := parseNumber(firstValue(row, "Market Cap")); ok {
		e.Metrics.MarketCap = &v
	}
	if v := firstValue(row, "Headquarters", "HQ"); v != "" {
		e.Geography.Headquarters = v
	}
	// Markets and regions accumulate without deduplication.
	if v := firstValue(row, "Market"); v != "" {
		e.Geography.Markets = append(e.Geography.Markets, v)
	}
	if v := firstValue(row, "Region"); v != "" {
		e.Geography.Regions = append(e.Geography.Regions, v)
	}
	if v := firstValue(row, "Industry"); v != "" {
		e.Business.Industry = v
	}
	if v := firstValue(row, "Vertical"); v != "" {
		e.Business.Vertical = v
	}
	if v := firstValue(row, "Product"); v != "" {
		e.Business.Products = appendUnique(e.Business.Products, v)
	}
	if v := firstValue(row, "Ownership"); v != "" {
		e.Business.Ownership = v
	}
	if v := firstValue(row, "Stock Symbol", "Ticker"); v != "" {
		e.Business.StockSymbol = v
	}
	if v, ok := parseNumber(firstValue(row, "Founded", "Founded Year")); ok {
		year := int(v)
		e.Business.Founded = &year
	}
}

// addCategoryTag appends a classification tag, deduplicating within the
// current source file only. The same tag arriving from a different file
// appears again, matching the additive-merge contract.
func addCategoryTag(e *model.CompanyEntity, row csvio.Row, seen map[string]bool) {
	tag := firstValue(row, "Category")
	if tag == "" {
		return
	}
	key := e.ID + "\x00" + tag
	if seen[key] {
		return
	}
	seen[key] = true
	e.Category = append(e.Category, tag)
}
