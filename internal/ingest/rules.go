package ingest

import (
	"strings"

	"github.com/waylens/terminal/internal/classify"
	"github.com/waylens/terminal/internal/model"
)

// metricRule maps a metric-name vocabulary term onto an entity mutation.
// Rules are iterated in order; the first name-substring hit wins, so a
// metric called "Revenue & Valuation (combined)" takes the revenue branch.
type metricRule struct {
	terms []string
	apply func(e *model.CompanyEntity, raw string)
}

var metricRules = []metricRule{
	{[]string{"revenue"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			e.Metrics.Revenue = &v
			e.Metrics.RevenueRange = classify.Revenue(v)
		}
	}},
	{[]string{"valuation"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			e.Metrics.Valuation = &v
			e.Metrics.ValuationRange = classify.Valuation(v)
		}
	}},
	{[]string{"fleet", "vehicle", "subscription"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			setFleetSize(e, v)
		}
	}},
	{[]string{"employee"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			e.Metrics.Employees = &v
		}
	}},
	{[]string{"customer"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			e.Metrics.Customers = &v
		}
	}},
	{[]string{"headquarters", "hq"}, func(e *model.CompanyEntity, raw string) {
		if raw != "" {
			e.Geography.Headquarters = raw
		}
	}},
	{[]string{"founded"}, func(e *model.CompanyEntity, raw string) {
		if v, ok := parseNumber(raw); ok {
			year := int(v)
			e.Business.Founded = &year
		}
	}},
}

// applyMetricRules routes one Metric/Value pair through the rule list.
// Unmatched metric names are ignored.
func applyMetricRules(e *model.CompanyEntity, metricName, raw string) {
	lower := strings.ToLower(metricName)
	for _, rule := range metricRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				rule.apply(e, raw)
				return
			}
		}
	}
}

// setFleetSize keeps fleet size as a running maximum across source rows.
func setFleetSize(e *model.CompanyEntity, v float64) {
	if e.Metrics.FleetSize != nil && *e.Metrics.FleetSize >= v {
		return
	}
	e.Metrics.FleetSize = &v
	e.Metrics.FleetSizeRange = classify.FleetSize(v)
}
