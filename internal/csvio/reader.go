// Package csvio reads delimited source files into column-keyed rows.
package csvio

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Row maps a header column name to that row's trimmed string value.
type Row map[string]string

// Table is an ordered sequence of parsed rows plus the header they were
// keyed by.
type Table struct {
	Header []string
	Rows   []Row
}

// ReadFile parses a delimited file into a Table. Blank physical lines are
// skipped. Rows shorter than the header are padded with empty strings for
// the missing trailing columns. Callers are expected to treat an error as a
// per-file condition: log a warning, skip the file, and continue the run.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csvio: read %s", path)
	}
	return Parse(string(data)), nil
}

// Parse parses raw delimited content. The first non-blank line is the
// header; every value is trimmed of surrounding whitespace.
func Parse(content string) *Table {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	t := &Table{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if t.Header == nil {
			t.Header = fields
			continue
		}
		row := make(Row, len(t.Header))
		for i, col := range t.Header {
			if i < len(fields) {
				row[col] = fields[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// SplitLine splits one physical line on commas, honoring double-quoted
// fields. A '"' toggles the in-quotes flag; a ',' separates fields only
// while the flag is off. Quote characters themselves are not emitted.
func SplitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
