// Package numeric normalizes the loosely formatted numeric strings that show
// up in venue spreadsheets and report forms: "$12,345.67", quoted cells,
// locale decimal commas, and half-typed values mid-edit.
package numeric

import (
	"strconv"
	"strings"
)

// currencyCleaner strips the characters venue exports wrap numbers in.
var currencyCleaner = strings.NewReplacer(
	"$", "",
	",", "",
	"\"", "",
	" ", "",
	"\t", "",
)

// ParseNumber parses a currency-flavored numeric string into a float.
// It strips dollar signs, thousands separators, quotes, and whitespace before
// parsing. Empty or unparseable input yields 0; ingestion never fails on a
// single sloppy cell.
func ParseNumber(raw string) float64 {
	cleaned := currencyCleaner.Replace(raw)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCell parses a cell value of unknown dynamic type. The Sheets API hands
// back interface{} values; numbers pass through unchanged, strings go through
// ParseNumber, anything else is 0.
func ParseCell(v interface{}) float64 {
	switch c := v.(type) {
	case nil:
		return 0
	case float64:
		return c
	case int:
		return float64(c)
	case int64:
		return float64(c)
	case string:
		return ParseNumber(c)
	default:
		return 0
	}
}

// CellString returns the trimmed string form of a sheet cell value.
func CellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return ""
	}
}
