// Package index derives search keywords, builds inverted indexes, and
// exports the dataset snapshot.
package index

import (
	"strings"

	"github.com/waylens/terminal/internal/model"
)

// BuildKeywords recomputes an entity's keyword set from scratch based on
// its final merged state. The result is deterministic: first-derivation
// order with duplicates dropped.
func BuildKeywords(e *model.CompanyEntity) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	add := func(kw string) {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	add(e.Name)
	for _, tok := range strings.Fields(e.Name) {
		add(tok)
	}

	if e.HasRevenue() {
		add("revenue-" + e.Metrics.RevenueRange)
		if *e.Metrics.Revenue > 100_000_000 {
			add("high-revenue")
		}
		if *e.Metrics.Revenue < 50_000_000 {
			add("low-revenue")
		}
	}

	if e.HasFleetSize() {
		add("fleet-" + e.Metrics.FleetSizeRange)
		if *e.Metrics.FleetSize > 1_000_000 {
			add("enterprise-fleet")
		}
		if *e.Metrics.FleetSize > 500_000 {
			add("large-fleet")
		}
		add("fleet-management")
	}

	if e.HasValuation() {
		add("valuation-" + e.Metrics.ValuationRange)
		if *e.Metrics.Valuation >= 1_000_000_000 {
			add("unicorn")
		}
	}

	for _, m := range e.Geography.Markets {
		add(m)
	}
	for _, r := range e.Geography.Regions {
		add(r)
	}

	add(e.Business.Vertical)
	for _, p := range e.Business.Products {
		add(p)
	}

	if e.Business.Ownership != "" {
		add(e.Business.Ownership)
		lower := strings.ToLower(e.Business.Ownership)
		if strings.Contains(lower, "public") {
			add("publicly-traded")
		}
		if strings.Contains(lower, "private") {
			add("private-company")
		}
	}

	return out
}
