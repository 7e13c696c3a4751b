package ingest

import (
	"errors"
	"strings"

	"liqreport/internal/numeric"
	"liqreport/pkg/contracts/domain"
)

// Column names as they appear in venue exports. The header row is located by
// the Exchange+Symbol landmark; the remaining columns are mapped by name and
// fall back to zero when absent.
const (
	colExchange       = "Exchange"
	colSymbol         = "Symbol"
	colJPEGVolume     = "JPEG Volume ($)"
	colMarketVolume   = "Market Volume ($)"
	colMarketShare    = "% Market Share"
	colLiquidity2Pct  = "2% Liquidity Avg ($)"
	colJPEGLiquidity  = "2% Liquidity"
	colLiquidityShare = "2% Share"
	colAvgSpread      = "Avg Spread (bps)"
)

// ErrMissingHeader is returned when no row carries the Exchange and Symbol
// landmark cells that anchor the tabular layout.
var ErrMissingHeader = errors.New(`could not find header row with "Exchange" and "Symbol"`)

// ErrNoExchangeData is returned when a header was found but no data row
// yielded a usable venue.
var ErrNoExchangeData = errors.New("no valid exchange data found")

// findHeaderRow scans rows top to bottom for the first row containing cells
// matching both "Exchange" and "Symbol". Returns -1 when none qualifies.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		var hasExchange, hasSymbol bool
		for _, cell := range row {
			if strings.Contains(cell, colExchange) {
				hasExchange = true
			}
			if strings.Contains(cell, colSymbol) {
				hasSymbol = true
			}
		}
		if hasExchange && hasSymbol {
			return i
		}
	}
	return -1
}

// columnMap builds a trimmed header-name to index lookup.
func columnMap(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name != "" {
			cols[name] = i
		}
	}
	return cols
}

// cellAt returns the trimmed cell at the named column, or "" when the column
// is unmapped or the row is short.
func cellAt(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// numberAt parses the cell at the named column in currency-cleaning mode.
func numberAt(row []string, cols map[string]int, name string) float64 {
	return numeric.ParseNumber(cellAt(row, cols, name))
}

// extractRecords walks the data rows below a header and emits one
// ExchangeRecord per row with a non-empty Exchange cell, order preserved.
// Rows without a venue are skipped, not errors.
func extractRecords(rows [][]string, cols map[string]int) []domain.ExchangeRecord {
	var records []domain.ExchangeRecord
	for _, row := range rows {
		venue := cellAt(row, cols, colExchange)
		if venue == "" {
			continue
		}
		records = append(records, domain.ExchangeRecord{
			Venue:             venue,
			Symbol:            cellAt(row, cols, colSymbol),
			JPEGVolume:        numberAt(row, cols, colJPEGVolume),
			MarketVolume:      numberAt(row, cols, colMarketVolume),
			MarketShare:       numberAt(row, cols, colMarketShare),
			Liquidity2Pct:     numberAt(row, cols, colLiquidity2Pct),
			JPEGLiquidity2Pct: numberAt(row, cols, colJPEGLiquidity),
			LiquidityShare:    numberAt(row, cols, colLiquidityShare),
			AvgSpread:         numberAt(row, cols, colAvgSpread),
		})
	}
	return records
}

// TokenExchanges is the partial ingestion result shared by the CSV and XLSX
// variants; balances and commentary come from other sources.
type TokenExchanges struct {
	Token     string
	Exchanges []domain.ExchangeRecord
}

// parseGrid applies the single-header contract to a row grid: the first row's
// first cell is the token, the header row is found by landmark scan, and every
// row after the header until end of input is a candidate record.
//
// Earlier revisions of the source format carried multiple header blocks per
// file, each with its own token guessed heuristically from short first cells.
// That layout is intentionally not supported: one file, one header.
func parseGrid(rows [][]string) (*TokenExchanges, error) {
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	var token string
	if len(rows[0]) > 0 {
		token = strings.TrimSpace(rows[0][0])
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, ErrMissingHeader
	}

	cols := columnMap(rows[headerIdx])
	records := extractRecords(rows[headerIdx+1:], cols)
	if len(records) == 0 {
		return nil, ErrNoExchangeData
	}

	// Token row and header row can coincide at row 0 in hand-trimmed files;
	// a token that is really the header landmark is no token at all.
	if strings.Contains(token, colExchange) {
		token = ""
	}

	return &TokenExchanges{Token: token, Exchanges: records}, nil
}
