package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV ingests venue data from CSV text. Standard RFC 4180 quoting rules
// apply; empty lines are skipped; short rows are allowed. The grid contract
// (token in the first cell, landmark header, data rows to EOF) is applied by
// parseGrid.
func ParseCSV(r io.Reader) (*TokenExchanges, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if isEmptyRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	return parseGrid(rows)
}

// ParseCSVString is a convenience wrapper for in-memory CSV payloads.
func ParseCSVString(text string) (*TokenExchanges, error) {
	return ParseCSV(strings.NewReader(text))
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
