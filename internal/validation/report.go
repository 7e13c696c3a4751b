// Package validation checks assembled report data before rendering. Findings
// are collected and returned as a list, never thrown: validation problems are
// expected, multi-valued, and non-fatal to the data model. Consumers must not
// render while the list is non-empty.
package validation

import (
	"fmt"

	"liqreport/pkg/contracts/domain"
)

// ValidationError is one human-readable finding, surfaced to the user
// verbatim.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// marketShareMax deliberately allows up to 200%: venue exports routinely
// carry minor inconsistencies that push a share slightly past 100.
const marketShareMax = 200

// Validate checks required fields and value-range invariants on a ReportData.
// It never mutates its input and collects every violation instead of stopping
// at the first. An empty result means the data is fit to render.
func Validate(data *domain.ReportData) []ValidationError {
	var errs []ValidationError

	if data.Token == "" {
		errs = append(errs, ValidationError{Field: "token", Message: "Token name is required"})
	}
	if data.Date == "" {
		errs = append(errs, ValidationError{Field: "date", Message: "Report date is required"})
	}

	for i, b := range data.Balances {
		if b.Notional < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("balances[%d].notional", i),
				Message: fmt.Sprintf("Balance #%d: Notional value cannot be negative", i+1),
			})
		}
		if b.Price < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("balances[%d].price", i),
				Message: fmt.Sprintf("Balance #%d: Price cannot be negative", i+1),
			})
		}
	}

	for i, e := range data.Exchanges {
		if e.Venue == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("exchanges[%d].venue", i),
				Message: fmt.Sprintf("Exchange #%d: Venue name is required", i+1),
			})
		}
		if e.MarketVolume < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("exchanges[%d].market_volume", i),
				Message: fmt.Sprintf("Exchange #%d: Market volume cannot be negative", i+1),
			})
		}
		if e.JPEGVolume < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("exchanges[%d].jpeg_volume", i),
				Message: fmt.Sprintf("Exchange #%d: JPEG volume cannot be negative", i+1),
			})
		}
		if e.MarketShare < 0 || e.MarketShare > marketShareMax {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("exchanges[%d].market_share", i),
				Message: fmt.Sprintf("Exchange #%d: Market share must be between 0%% and 200%%", i+1),
			})
		}
	}

	return errs
}
