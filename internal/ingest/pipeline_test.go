package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// Two rows in two files resolving to the same normalized name produce one
// entity carrying both files' fields.
func TestPipelineMergesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "01_samsara_company_data.csv",
		"Company,Metric,Value\n"+
			`Samsara,Revenue (FY2024),"$937,400,000"`+"\n")
	writeFixture(t, dir, "02_samsara_customer_references.csv",
		"Customer,Industry\n"+
			"DHL,Logistics\n"+
			"DHL,Logistics\n")

	p := NewPipeline(dir)
	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesProcessed)
	assert.Equal(t, 0, summary.FilesFailed)
	require.Equal(t, 1, summary.Companies)

	entities := p.Entities()
	e := entities[0]
	assert.Equal(t, "Samsara", e.Name)
	require.NotNil(t, e.Metrics.Revenue)
	assert.Equal(t, 937_400_000.0, *e.Metrics.Revenue)
	assert.Equal(t, "large", e.Metrics.RevenueRange)
	// Duplicate customer rows collapse to one entry.
	assert.Equal(t, []string{"DHL"}, e.Relationships.Customers)
	assert.Contains(t, e.SourceFiles, "01_samsara_company_data.csv")
	assert.Contains(t, e.SourceFiles, "02_samsara_customer_references.csv")
}

// A relationship file whose name carries only an ordinal resolves the
// owner from the Company column, folding rows into the existing entity
// instead of minting one named after the number prefix.
func TestPipelineCustomerFileWithoutCompanyToken(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "01_company_data.csv",
		"Company,Metric,Value\n"+
			`Samsara,Revenue (FY2024),"$937,400,000"`+"\n")
	writeFixture(t, dir, "02_customer_data.csv",
		"Company,Customer\n"+
			"Samsara Inc,DHL\n")

	p := NewPipeline(dir)
	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Companies)
	e := p.Entities()[0]
	assert.Equal(t, "Samsara", e.Name)
	assert.Equal(t, []string{"DHL"}, e.Relationships.Customers)
}

// A broken file is skipped with a warning; the rest of the run proceeds.
func TestPipelineFailSoft(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "01_geotab_company_data.csv",
		"Company,Metric,Value\nGeotab,Fleet Size,\"4,700,000\"\n")
	// An unreadable XLSX: the reader errors, the pipeline continues.
	writeFixture(t, dir, "02_bogus_financials.xlsx", "not a zip archive")

	p := NewPipeline(dir)
	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Equal(t, 1, summary.FilesFailed)
	assert.Equal(t, []string{"02_bogus_financials.xlsx"}, summary.FailedFiles)
	assert.Equal(t, 1, summary.Companies)
}

func TestPipelineMissingDir(t *testing.T) {
	p := NewPipeline(filepath.Join(t.TempDir(), "absent"))
	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

// Re-running over an unchanged file set yields identical entities modulo
// creation timestamps.
func TestPipelineIdempotence(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "01_vendors.csv",
		"Company,Fleet Size,Region\nGeotab,4700000,North America\nSamsara,2700000,North America\n")
	writeFixture(t, dir, "02_samsara_financials.csv",
		"Company,Revenue,Growth Rate\nSamsara,937400000,33%\n")

	run := func() []string {
		p := NewPipeline(dir)
		_, err := p.Run(context.Background())
		require.NoError(t, err)
		var ids []string
		for _, e := range p.Entities() {
			ids = append(ids, e.ID+":"+e.Name+":"+e.Metrics.FleetSizeRange)
		}
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestPipelineVendorAndFinancialFields(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "07_telematics_vendors.csv",
		"Company,Fleet Size,Headquarters,Category\n"+
			"Geotab,4700000,\"Oakville, Canada\",Telematics\n")
	writeFixture(t, dir, "03_geotab_financial_metrics.csv",
		"Company,Revenue,Growth Rate,ARR\nGeotab,600000000,18%,580000000\n")

	p := NewPipeline(dir)
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	e := p.Entities()[0]
	assert.Equal(t, "Geotab", e.Name)
	require.NotNil(t, e.Metrics.FleetSize)
	assert.Equal(t, "enterprise", e.Metrics.FleetSizeRange)
	assert.Equal(t, "Oakville, Canada", e.Geography.Headquarters)
	assert.Equal(t, []string{"Telematics"}, e.Category)
	require.NotNil(t, e.Financials.Revenue)
	assert.Equal(t, 600_000_000.0, *e.Financials.Revenue)
	require.NotNil(t, e.Financials.GrowthRate)
	assert.Equal(t, 18.0, *e.Financials.GrowthRate)
	require.NotNil(t, e.Financials.ARR)
	// Financial extractor also feeds the metrics view.
	require.NotNil(t, e.Metrics.Revenue)
	assert.Equal(t, "large", e.Metrics.RevenueRange)
}

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	os.Exit(m.Run())
}
