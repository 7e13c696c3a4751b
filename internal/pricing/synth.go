// Package pricing supplies the price data a report needs: a deterministic
// synthetic daily series when no real history exists, and an external
// market-data lookup for balance prices and 30-day histories.
package pricing

import (
	"math"
	"time"

	"liqreport/pkg/contracts/domain"
)

const (
	maxSynthDays   = 30
	variationScale = 0.3
)

// Synthesize generates a smooth daily price path for the one-month window
// ending at asOf, from four OHLC anchor points. The base trajectory linearly
// interpolates open to close; a weighted sum of three fixed sinusoids adds
// visually plausible movement, scaled by (high-low)*0.3 and clamped into
// [low, high]. The output is fully determined by its inputs: the same OHLC
// and date always produce the identical series, so a re-rendered chart never
// changes shape. Each price is rounded to 6 decimal places.
//
// The result is tagged SeriesSynthetic; it must never be presented as market
// data.
func Synthesize(ohlc domain.PriceOHLC, asOf time.Time) domain.PriceSeries {
	start := asOf.AddDate(0, -1, 0)
	daysDiff := int(math.Ceil(asOf.Sub(start).Hours() / 24))
	n := daysDiff
	if n > maxSynthDays {
		n = maxSynthDays
	}

	priceRange := ohlc.High - ohlc.Low

	points := make([]domain.PricePoint, 0, n+1)
	for i := 0; i <= n; i++ {
		progress := 0.0
		if n > 0 {
			progress = float64(i) / float64(n)
		}
		base := ohlc.Open + (ohlc.Close-ohlc.Open)*progress

		fi := float64(i)
		variation := (math.Sin(fi*0.5)*0.3 + math.Sin(fi*0.3)*0.2 + math.Cos(fi*0.7)*0.15) *
			priceRange * variationScale

		price := base + variation
		if price < ohlc.Low {
			price = ohlc.Low
		}
		if price > ohlc.High {
			price = ohlc.High
		}

		points = append(points, domain.PricePoint{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Price: math.Round(price*1e6) / 1e6,
		})
	}

	return domain.PriceSeries{Points: points, Source: domain.SeriesSynthetic}
}
