package index

import (
	"strings"

	"github.com/waylens/terminal/internal/model"
)

// Inverted maps each discriminant value to the ids of the entities that
// carry it. Id lists preserve entity order.
type Inverted struct {
	Keyword        map[string][]string
	Category       map[string][]string
	RevenueRange   map[string][]string
	FleetSizeRange map[string][]string
	ValuationRange map[string][]string
	Geography      map[string][]string
}

// Finalize recomputes every entity's keywords in place and builds the
// inverted indexes over the finalized set. Call once after all source
// files are folded in.
func Finalize(entities []model.CompanyEntity) ([]model.CompanyEntity, *Inverted) {
	inv := &Inverted{
		Keyword:        map[string][]string{},
		Category:       map[string][]string{},
		RevenueRange:   map[string][]string{},
		FleetSizeRange: map[string][]string{},
		ValuationRange: map[string][]string{},
		Geography:      map[string][]string{},
	}

	for i := range entities {
		e := &entities[i]
		e.Keywords = BuildKeywords(e)

		for _, kw := range e.Keywords {
			inv.Keyword[kw] = append(inv.Keyword[kw], e.ID)
		}
		for _, tag := range e.Category {
			key := strings.ToLower(tag)
			inv.Category[key] = appendID(inv.Category[key], e.ID)
		}
		if e.Metrics.RevenueRange != "" {
			inv.RevenueRange[e.Metrics.RevenueRange] = append(inv.RevenueRange[e.Metrics.RevenueRange], e.ID)
		}
		if e.Metrics.FleetSizeRange != "" {
			inv.FleetSizeRange[e.Metrics.FleetSizeRange] = append(inv.FleetSizeRange[e.Metrics.FleetSizeRange], e.ID)
		}
		if e.Metrics.ValuationRange != "" {
			inv.ValuationRange[e.Metrics.ValuationRange] = append(inv.ValuationRange[e.Metrics.ValuationRange], e.ID)
		}
		for _, g := range geographyKeys(e) {
			inv.Geography[g] = appendID(inv.Geography[g], e.ID)
		}
	}

	return entities, inv
}

// geographyKeys yields the lowercase geography discriminants of an entity.
func geographyKeys(e *model.CompanyEntity) []string {
	var (
		keys []string
		seen = map[string]bool{}
	)
	add := func(s string) {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		keys = append(keys, s)
	}
	add(e.Geography.Headquarters)
	for _, m := range e.Geography.Markets {
		add(m)
	}
	for _, r := range e.Geography.Regions {
		add(r)
	}
	return keys
}

// appendID appends id unless it is already the list's last element, which
// covers repeated same-entity values without a membership scan.
func appendID(list []string, id string) []string {
	if n := len(list); n > 0 && list[n-1] == id {
		return list
	}
	return append(list, id)
}
