package search

// Stats aggregates the loaded dataset. Averages divide by the count of
// entities carrying the metric and are nil when no entity does, instead
// of a silent NaN.
type Stats struct {
	TotalCompanies  int            `json:"totalCompanies"`
	WithRevenue     int            `json:"withRevenue"`
	WithFleetSize   int            `json:"withFleetSize"`
	WithValuation   int            `json:"withValuation"`
	TotalRevenue    float64        `json:"totalRevenue"`
	TotalFleetSize  float64        `json:"totalFleetSize"`
	TotalValuation  float64        `json:"totalValuation"`
	AvgRevenue      *float64       `json:"avgRevenue"`
	AvgFleetSize    *float64       `json:"avgFleetSize"`
	AvgValuation    *float64       `json:"avgValuation"`
	RevenueRanges   map[string]int `json:"revenueRanges"`
	FleetSizeRanges map[string]int `json:"fleetSizeRanges"`
	ValuationRanges map[string]int `json:"valuationRanges"`
}

// Stats computes aggregate statistics over the full entity set.
func (e *Engine) Stats() (*Stats, error) {
	ds, err := e.cache.get()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalCompanies:  len(ds.order),
		RevenueRanges:   map[string]int{},
		FleetSizeRanges: map[string]int{},
		ValuationRanges: map[string]int{},
	}

	for _, id := range ds.order {
		ent := ds.byID[id]
		if ent.HasRevenue() {
			stats.WithRevenue++
			stats.TotalRevenue += *ent.Metrics.Revenue
		}
		if ent.HasFleetSize() {
			stats.WithFleetSize++
			stats.TotalFleetSize += *ent.Metrics.FleetSize
		}
		if ent.HasValuation() {
			stats.WithValuation++
			stats.TotalValuation += *ent.Metrics.Valuation
		}
		if ent.Metrics.RevenueRange != "" {
			stats.RevenueRanges[ent.Metrics.RevenueRange]++
		}
		if ent.Metrics.FleetSizeRange != "" {
			stats.FleetSizeRanges[ent.Metrics.FleetSizeRange]++
		}
		if ent.Metrics.ValuationRange != "" {
			stats.ValuationRanges[ent.Metrics.ValuationRange]++
		}
	}

	stats.AvgRevenue = avg(stats.TotalRevenue, stats.WithRevenue)
	stats.AvgFleetSize = avg(stats.TotalFleetSize, stats.WithFleetSize)
	stats.AvgValuation = avg(stats.TotalValuation, stats.WithValuation)

	return stats, nil
}

func avg(total float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	v := total / float64(count)
	return &v
}
