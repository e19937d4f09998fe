package fileindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIndexFile(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "02_geotab_customer_references.csv",
		"Customer,Fleet_Size,Industry\nDHL,102000,Logistics\nWalmart,10000,Retail\n")

	ix := NewIndexer(nil)
	meta := ix.IndexFile(dir, "02_geotab_customer_references.csv")

	assert.Equal(t, 2, meta.Number)
	assert.Equal(t, "geotab", meta.Company)
	assert.Equal(t, "customer", meta.Topic)
	assert.Contains(t, meta.Keywords, "geotab")
	assert.Contains(t, meta.Keywords, "references")
	assert.Equal(t, []string{"Customer", "Fleet_Size", "Industry"}, meta.Columns)
	assert.Equal(t, 2, meta.RowCount)
}

func TestIndexFileNonNumericPrefix(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "samsara_financials.csv", "Metric,Value\nRevenue,100\n")

	meta := NewIndexer(nil).IndexFile(dir, "samsara_financials.csv")
	assert.Equal(t, 0, meta.Number)
	assert.Equal(t, "samsara", meta.Company)
	assert.Equal(t, "financial", meta.Topic)
}

// An unreadable file still yields a filename-derived record.
func TestIndexFileUnreadable(t *testing.T) {
	ix := NewIndexer(nil)
	meta := ix.IndexFile(t.TempDir(), "03_lytx_pricing.csv")

	assert.Equal(t, "lytx", meta.Company)
	assert.Equal(t, "pricing", meta.Topic)
	assert.Empty(t, meta.Columns)
	assert.Equal(t, 0, meta.RowCount)
}

func TestBuildIndexCollectsDistinctCompaniesAndTopics(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "01_samsara_revenue.csv", "Metric,Value\n")
	writeCSV(t, dir, "02_samsara_customers.csv", "Customer\n")
	writeCSV(t, dir, "03_geotab_revenue.csv", "Metric,Value\n")
	writeCSV(t, dir, "notes.txt", "ignored")

	snap, err := NewIndexer(nil).BuildIndex(dir)
	require.NoError(t, err)

	assert.Len(t, snap.Files, 3)
	assert.Equal(t, []string{"samsara", "geotab"}, snap.Companies)
	assert.Equal(t, []string{"revenue", "customer"}, snap.Topics)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestExportAndLoadIndex(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "01_motive_pricing.csv", "Plan,Price\nStarter,25\n")

	snap, err := NewIndexer(nil).BuildIndex(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "out", "csv-file-index.json")
	require.NoError(t, ExportIndex(snap, path))

	loaded, err := LoadIndex(path)
	require.NoError(t, err)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, "motive", loaded.Files[0].Company)
	assert.Equal(t, "pricing", loaded.Files[0].Topic)
}

func TestLoadVocabOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies:\n  - acme fleet\n"), 0o644))

	v, err := LoadVocab(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme fleet"}, v.Companies)
	// Topics fall back to defaults.
	assert.Contains(t, v.Topics, "pricing")
}

func TestLoadVocabMissing(t *testing.T) {
	_, err := LoadVocab(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
