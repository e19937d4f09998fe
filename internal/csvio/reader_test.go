package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"leading quoted", `"x,y",z`, []string{"x,y", "z"}},
		{"whitespace trimmed", " a , b ,c ", []string{"a", "b", "c"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
		{"single field", "only", []string{"only"}},
		{"trailing comma", "a,b,", []string{"a", "b", ""}},
		{"money value", `Samsara,"$937,400,000"`, []string{"Samsara", "$937,400,000"}},
		{"unterminated quote swallows commas", `a,"b,c`, []string{"a", "b,c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestParse(t *testing.T) {
	content := "Company,Revenue,HQ\n" +
		"Samsara,\"$937,400,000\",San Francisco\n" +
		"\n" +
		"Geotab,600000000\n"

	table := Parse(content)
	require.Equal(t, []string{"Company", "Revenue", "HQ"}, table.Header)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Samsara", table.Rows[0]["Company"])
	assert.Equal(t, "$937,400,000", table.Rows[0]["Revenue"])
	assert.Equal(t, "San Francisco", table.Rows[0]["HQ"])

	// Short row padded with empty trailing columns.
	assert.Equal(t, "Geotab", table.Rows[1]["Company"])
	assert.Equal(t, "", table.Rows[1]["HQ"])
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	table := Parse("A,B\r\n\r\n1,2\r\n")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0]["A"])
	assert.Equal(t, "2", table.Rows[0]["B"])
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte("Company,Metric\nSamsara,Revenue\n"), 0o644))

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Samsara", table.Rows[0]["Company"])
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, IsXLSX("01_data.XLSX"))
	assert.True(t, IsXLSX("fleet.xlsx"))
	assert.False(t, IsXLSX("fleet.csv"))
}
