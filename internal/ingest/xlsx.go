package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX ingests venue data from an Excel workbook. Sheets are tried in
// workbook order and the first one whose rows carry the Exchange+Symbol
// header landmark wins; the same grid contract as CSV applies to its rows.
func ParseXLSX(r io.Reader) (*TokenExchanges, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if findHeaderRow(rows) < 0 {
			continue
		}
		result, err := parseGrid(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		return result, nil
	}

	return nil, ErrMissingHeader
}
