package csvio

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX parses the first sheet of an XLSX workbook into a Table, keyed
// by the first row. Cell values are trimmed like CSV fields.
func ReadXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csvio: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("csvio: xlsx %s has no sheets", path)
	}

	t := &Table{}
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		blank := true
		for i, cell := range row.Cells {
			cells[i] = strings.TrimSpace(cell.String())
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		if t.Header == nil {
			t.Header = cells
			continue
		}
		r := make(Row, len(t.Header))
		for i, col := range t.Header {
			if i < len(cells) {
				r[col] = cells[i]
			} else {
				r[col] = ""
			}
		}
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// IsXLSX reports whether a filename should be routed to the XLSX reader.
func IsXLSX(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx")
}
