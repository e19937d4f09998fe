package search

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waylens/terminal/internal/model"
)

func f64(v float64) *float64 { return &v }

func testSnapshot() *model.DatasetSnapshot {
	return &model.DatasetSnapshot{
		Companies: []model.CompanyEntity{
			{
				ID:       "company-1",
				Name:     "Samsara",
				Keywords: []string{"samsara", "fleet-management", "revenue-large", "high-revenue", "publicly-traded"},
				Metrics: model.Metrics{
					Revenue:        f64(937_400_000),
					RevenueRange:   "large",
					FleetSize:      f64(2_700_000),
					FleetSizeRange: "enterprise",
					Valuation:      f64(12_000_000_000),
					ValuationRange: "mega-unicorn",
				},
				Geography:   model.Geography{Headquarters: "San Francisco, CA"},
				Business:    model.Business{Ownership: "Public (NYSE: IOT)", Products: []string{"Dashcams", "ELD"}},
				SourceFiles: []string{"a.csv", "b.csv", "c.csv", "d.csv"},
			},
			{
				ID:       "company-2",
				Name:     "Samsara Inc Partners",
				Keywords: []string{"samsara inc partners", "samsara", "partners"},
			},
			{
				ID:       "company-3",
				Name:     "Geotab",
				Keywords: []string{"geotab", "fleet-management", "fleet-enterprise"},
				Metrics: model.Metrics{
					FleetSize:      f64(4_700_000),
					FleetSizeRange: "enterprise",
				},
				Geography: model.Geography{Headquarters: "Oakville, Canada", Regions: []string{"North America"}},
				Category:  []string{"Telematics"},
			},
			{
				ID:       "company-4",
				Name:     "Azuga",
				Keywords: []string{"azuga", "revenue-small", "low-revenue"},
				Metrics: model.Metrics{
					Revenue:      f64(30_000_000),
					RevenueRange: "small",
				},
			},
		},
		Metadata: model.SnapshotMetadata{TotalCompanies: 4, GeneratedAt: time.Now(), Version: model.SnapshotVersion},
	}
}

func writeSnapshot(t *testing.T, snap *model.DatasetSnapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company-dataset.json")
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(NewCache(writeSnapshot(t, testSnapshot())))
}

func TestSearchExactNameOutranksPartial(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.Search(model.SearchFilters{Query: "samsara"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(results), 2)

	assert.Equal(t, "Samsara", results[0].Company.Name)
	assert.Contains(t, results[0].MatchedFields, "name-exact")
	assert.Greater(t, results[0].Score, results[1].Score)

	for _, r := range results {
		if r.Company.Name == "Samsara Inc Partners" {
			assert.Contains(t, r.MatchedFields, "name-partial")
		}
	}
}

func TestSearchFilterANDSemantics(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.Search(model.SearchFilters{
		Query:        "fleet",
		RevenueRange: []string{"large"},
	})
	require.NoError(t, err)

	// Geotab matches "fleet" strongly but fails the revenue filter.
	require.Len(t, results, 1)
	assert.Equal(t, "Samsara", results[0].Company.Name)
}

func TestSearchFiltersOnlyReturnsAllPassing(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.Search(model.SearchFilters{FleetSizeRange: []string{"enterprise"}})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// No text query: completeness-only scores, no text-match flags.
	for _, r := range results {
		assert.NotContains(t, r.MatchedFields, "name-exact")
		assert.NotContains(t, r.MatchedFields, "name-partial")
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestSearchNoTextMatchYieldsEmpty(t *testing.T) {
	e := newTestEngine(t)
	results, err := e.Search(model.SearchFilters{Query: "zzznotfound"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRichDataBonus(t *testing.T) {
	e := newTestEngine(t)
	results, err := e.Search(model.SearchFilters{Query: "samsara"})
	require.NoError(t, err)
	assert.Contains(t, results[0].MatchedFields, "rich-data")
}

func TestSearchNumericThresholds(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.Search(model.SearchFilters{MinRevenue: f64(100_000_000)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Samsara", results[0].Company.Name)

	// Entities with no revenue fail an active revenue threshold filter.
	results, err = e.Search(model.SearchFilters{MaxRevenue: f64(50_000_000)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Azuga", results[0].Company.Name)
}

func TestSearchGeographyAndOwnership(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.Search(model.SearchFilters{Geography: []string{"canada"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Geotab", results[0].Company.Name)

	results, err = e.Search(model.SearchFilters{Ownership: []string{"public"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Samsara", results[0].Company.Name)

	results, err = e.Search(model.SearchFilters{Products: []string{"eld"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Samsara", results[0].Company.Name)
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	e := newTestEngine(t)
	results, err := e.Search(model.SearchFilters{})
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestGetByName(t *testing.T) {
	e := newTestEngine(t)

	ent, err := e.GetByName("geotab")
	require.NoError(t, err)
	require.NotNil(t, ent)
	assert.Equal(t, "Geotab", ent.Name)

	// First match wins: "samsara" substring-matches company-1 first.
	ent, err = e.GetByName("samsara")
	require.NoError(t, err)
	require.NotNil(t, ent)
	assert.Equal(t, "company-1", ent.ID)

	ent, err = e.GetByName("nobody")
	require.NoError(t, err)
	assert.Nil(t, ent)
}

func TestGetByCategoryAndRanges(t *testing.T) {
	e := newTestEngine(t)

	ents, err := e.GetByCategory("telemat")
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, "Geotab", ents[0].Name)

	ents, err = e.GetByRevenueRange("small")
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, "Azuga", ents[0].Name)

	ents, err = e.GetByFleetSizeRange("enterprise")
	require.NoError(t, err)
	assert.Len(t, ents, 2)

	ents, err = e.GetByGeography("north america")
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, "Geotab", ents[0].Name)
}

func TestTopByMetric(t *testing.T) {
	e := newTestEngine(t)

	top, err := e.TopByMetric("fleetSize", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Geotab", top[0].Name)
	assert.Equal(t, "Samsara", top[1].Name)

	// Missing values are treated as zero and sink to the bottom.
	top, err = e.TopByMetric("revenue", 0)
	require.NoError(t, err)
	assert.Equal(t, "Samsara", top[0].Name)

	_, err = e.TopByMetric("nonsense", 3)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	e := newTestEngine(t)

	stats, err := e.Stats()
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalCompanies)
	assert.Equal(t, 2, stats.WithRevenue)
	assert.Equal(t, 2, stats.WithFleetSize)
	assert.Equal(t, 1, stats.WithValuation)
	require.NotNil(t, stats.AvgRevenue)
	assert.InDelta(t, (937_400_000.0+30_000_000.0)/2, *stats.AvgRevenue, 0.01)
	assert.Equal(t, map[string]int{"enterprise": 2}, stats.FleetSizeRanges)
}

// No entity carries the metric: average is nil, not NaN.
func TestStatsAverageNilWhenAbsent(t *testing.T) {
	snap := &model.DatasetSnapshot{
		Companies: []model.CompanyEntity{{ID: "company-1", Name: "Empty Co"}},
	}
	e := NewEngine(NewCache(writeSnapshot(t, snap)))

	stats, err := e.Stats()
	require.NoError(t, err)
	assert.Nil(t, stats.AvgRevenue)
	assert.Nil(t, stats.AvgFleetSize)
	assert.Nil(t, stats.AvgValuation)
}

func TestSnapshotLoadFailure(t *testing.T) {
	e := NewEngine(NewCache(filepath.Join(t.TempDir(), "missing.json")))
	_, err := e.Search(model.SearchFilters{Query: "x"})
	assert.Error(t, err)
}

func TestCacheInvalidateReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	write := func(snap *model.DatasetSnapshot) {
		data, err := json.Marshal(snap)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	write(&model.DatasetSnapshot{Companies: []model.CompanyEntity{{ID: "company-1", Name: "First"}}})
	e := NewEngine(NewCache(path))

	ent, err := e.GetByName("first")
	require.NoError(t, err)
	require.NotNil(t, ent)

	write(&model.DatasetSnapshot{Companies: []model.CompanyEntity{{ID: "company-1", Name: "Second"}}})

	// Still cached.
	ent, err = e.GetByName("second")
	require.NoError(t, err)
	assert.Nil(t, ent)

	e.Invalidate()
	ent, err = e.GetByName("second")
	require.NoError(t, err)
	require.NotNil(t, ent)
	assert.Equal(t, "Second", ent.Name)
}
