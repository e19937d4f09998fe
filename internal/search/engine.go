package search

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/waylens/terminal/internal/model"
)

// Engine answers company queries over a snapshot cache.
type Engine struct {
	cache *Cache
}

// NewEngine creates an engine over an explicit snapshot cache.
func NewEngine(cache *Cache) *Engine {
	return &Engine{cache: cache}
}

// Invalidate forces a snapshot reload on the next query.
func (e *Engine) Invalidate() { e.cache.Invalidate() }

// Snapshot returns the loaded dataset snapshot.
func (e *Engine) Snapshot() (*model.DatasetSnapshot, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}
	return ds.snap, nil
}

// Search runs a scored multi-filter query. Free text, when present, runs
// first and produces the working set; every categorical filter is then a
// strict AND. Results come back highest score first; equal scores keep
// snapshot order.
func (e *Engine) Search(filters model.SearchFilters) ([]model.SearchResult, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filters.Query))
	tokens := strings.Fields(query)

	candidates := ds.order
	if query != "" {
		candidates = textMatch(ds, query, tokens)
	}

	var results []model.SearchResult
	for _, id := range candidates {
		ent := ds.byID[id]
		if !passesFilters(ent, &filters) {
			continue
		}
		score, matched := scoreEntity(ent, query, tokens)
		results = append(results, model.SearchResult{
			Company:       ent,
			Score:         score,
			MatchedFields: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// textMatch narrows the universe to entities matching the query by name
// substring or by symmetric keyword/token substring overlap.
func textMatch(ds *dataset, query string, tokens []string) []string {
	var matched []string
	for _, id := range ds.order {
		ent := ds.byID[id]
		if strings.Contains(strings.ToLower(ent.Name), query) {
			matched = append(matched, id)
			continue
		}
		if keywordOverlap(ent.Keywords, tokens) {
			matched = append(matched, id)
		}
	}
	return matched
}

// keywordOverlap reports whether any keyword contains a query token or any
// query token contains a keyword.
func keywordOverlap(keywords, tokens []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) || strings.Contains(tok, lower) {
				return true
			}
		}
	}
	return false
}

// passesFilters applies every active categorical and numeric filter as a
// strict AND.
func passesFilters(e *model.CompanyEntity, f *model.SearchFilters) bool {
	if len(f.RevenueRange) > 0 && !containsFold(f.RevenueRange, e.Metrics.RevenueRange) {
		return false
	}
	if len(f.FleetSizeRange) > 0 && !containsFold(f.FleetSizeRange, e.Metrics.FleetSizeRange) {
		return false
	}
	if len(f.ValuationRange) > 0 && !containsFold(f.ValuationRange, e.Metrics.ValuationRange) {
		return false
	}
	if len(f.Geography) > 0 && !matchesGeography(e, f.Geography) {
		return false
	}
	if len(f.Products) > 0 && !matchesProducts(e, f.Products) {
		return false
	}
	if len(f.Ownership) > 0 && !matchesOwnership(e, f.Ownership) {
		return false
	}
	if f.MinRevenue != nil && (e.Metrics.Revenue == nil || *e.Metrics.Revenue < *f.MinRevenue) {
		return false
	}
	if f.MaxRevenue != nil && (e.Metrics.Revenue == nil || *e.Metrics.Revenue > *f.MaxRevenue) {
		return false
	}
	if f.MinFleetSize != nil && (e.Metrics.FleetSize == nil || *e.Metrics.FleetSize < *f.MinFleetSize) {
		return false
	}
	if f.MaxFleetSize != nil && (e.Metrics.FleetSize == nil || *e.Metrics.FleetSize > *f.MaxFleetSize) {
		return false
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func matchesGeography(e *model.CompanyEntity, wanted []string) bool {
	fields := append([]string{e.Geography.Headquarters}, e.Geography.Markets...)
	fields = append(fields, e.Geography.Regions...)
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, field := range fields {
			if field != "" && strings.Contains(strings.ToLower(field), lw) {
				return true
			}
		}
	}
	return false
}

func matchesProducts(e *model.CompanyEntity, wanted []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, p := range e.Business.Products {
			if strings.Contains(strings.ToLower(p), lw) {
				return true
			}
		}
	}
	return false
}

func matchesOwnership(e *model.CompanyEntity, wanted []string) bool {
	ownership := strings.ToLower(e.Business.Ownership)
	for _, w := range wanted {
		if ownership != "" && strings.Contains(ownership, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// scoreEntity computes the relevance score and matched-field flags:
// exact name 100, partial name 50, 10 per keyword containing a query
// token, completeness bonuses for revenue/fleet/valuation/headquarters,
// and a rich-data bonus for entities fed by more than three source files.
func scoreEntity(e *model.CompanyEntity, query string, tokens []string) (float64, []string) {
	var (
		score   float64
		matched []string
	)

	if query != "" {
		lowerName := strings.ToLower(e.Name)
		if lowerName == query {
			score += 100
			matched = append(matched, "name-exact")
		} else if strings.Contains(lowerName, query) {
			score += 50
			matched = append(matched, "name-partial")
		}

		for _, tok := range tokens {
			for _, kw := range e.Keywords {
				if strings.Contains(strings.ToLower(kw), tok) {
					score += 10
					matched = append(matched, "keyword-"+kw)
				}
			}
		}
	}

	if e.HasRevenue() {
		score += 5
	}
	if e.HasFleetSize() {
		score += 5
	}
	if e.HasValuation() {
		score += 5
	}
	if e.Geography.Headquarters != "" {
		score += 2
	}
	if len(e.SourceFiles) > 3 {
		score += 10
		matched = append(matched, "rich-data")
	}

	return score, matched
}

// GetByID returns the entity with the exact id, or nil.
func (e *Engine) GetByID(id string) (*model.CompanyEntity, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}
	return ds.byID[id], nil
}

// GetByName returns the first entity whose name equals or substring-matches
// the given name in either direction.
func (e *Engine) GetByName(name string) (*model.CompanyEntity, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, nil
	}
	for _, id := range ds.order {
		ent := ds.byID[id]
		lower := strings.ToLower(ent.Name)
		if strings.Contains(lower, q) || strings.Contains(q, lower) {
			return ent, nil
		}
	}
	return nil, nil
}

// GetByCategory returns entities with a category tag containing the query.
func (e *Engine) GetByCategory(category string) ([]model.CompanyEntity, error) {
	q := strings.ToLower(category)
	return e.collect(func(ent *model.CompanyEntity) bool {
		for _, tag := range ent.Category {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	})
}

// GetByRevenueRange returns entities with the exact revenue tier label.
func (e *Engine) GetByRevenueRange(label string) ([]model.CompanyEntity, error) {
	return e.collect(func(ent *model.CompanyEntity) bool {
		return ent.Metrics.RevenueRange == label
	})
}

// GetByFleetSizeRange returns entities with the exact fleet tier label.
func (e *Engine) GetByFleetSizeRange(label string) ([]model.CompanyEntity, error) {
	return e.collect(func(ent *model.CompanyEntity) bool {
		return ent.Metrics.FleetSizeRange == label
	})
}

// GetByGeography returns entities whose headquarters, markets, or regions
// contain the query as a substring.
func (e *Engine) GetByGeography(geo string) ([]model.CompanyEntity, error) {
	return e.collect(func(ent *model.CompanyEntity) bool {
		return matchesGeography(ent, []string{geo})
	})
}

func (e *Engine) collect(keep func(*model.CompanyEntity) bool) ([]model.CompanyEntity, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}
	var out []model.CompanyEntity
	for _, id := range ds.order {
		if keep(ds.byID[id]) {
			out = append(out, *ds.byID[id])
		}
	}
	return out, nil
}

// TopByMetric returns the top n entities by a named metric, descending.
// Entities missing the metric count as zero.
func (e *Engine) TopByMetric(metric string, n int) ([]model.CompanyEntity, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}

	value, err := metricGetter(metric)
	if err != nil {
		return nil, err
	}

	out := make([]model.CompanyEntity, 0, len(ds.order))
	for _, id := range ds.order {
		out = append(out, *ds.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return value(&out[i]) > value(&out[j])
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

func metricGetter(metric string) (func(*model.CompanyEntity) float64, error) {
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	switch metric {
	case "revenue":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.Revenue) }, nil
	case "fleetSize":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.FleetSize) }, nil
	case "valuation":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.Valuation) }, nil
	case "employees":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.Employees) }, nil
	case "customers":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.Customers) }, nil
	case "marketCap":
		return func(e *model.CompanyEntity) float64 { return deref(e.Metrics.MarketCap) }, nil
	default:
		return nil, eris.Errorf("search: unknown metric %q", metric)
	}
}
