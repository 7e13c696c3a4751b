package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liqreport/pkg/contracts/domain"
)

var synthOHLC = domain.PriceOHLC{Open: 1.0, High: 1.4, Low: 0.8, Close: 1.2}

func TestSynthesizeDeterministic(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	a := Synthesize(synthOHLC, asOf)
	b := Synthesize(synthOHLC, asOf)

	assert.Equal(t, a, b, "identical inputs must yield identical series")
}

func TestSynthesizeBounds(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	series := Synthesize(synthOHLC, asOf)

	require.NotEmpty(t, series.Points)
	for _, p := range series.Points {
		assert.GreaterOrEqual(t, p.Price, synthOHLC.Low)
		assert.LessOrEqual(t, p.Price, synthOHLC.High)
	}
}

func TestSynthesizeWindow(t *testing.T) {
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	series := Synthesize(synthOHLC, asOf)

	assert.Equal(t, domain.SeriesSynthetic, series.Source)
	assert.LessOrEqual(t, len(series.Points), 31)
	assert.Equal(t, "2025-02-15", series.Points[0].Date, "window starts one month before asOf")

	// chronological order
	for i := 1; i < len(series.Points); i++ {
		assert.Less(t, series.Points[i-1].Date, series.Points[i].Date)
	}
}

func TestSynthesizeEndpointsTrackOpenClose(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	series := Synthesize(synthOHLC, asOf)

	first := series.Points[0].Price
	last := series.Points[len(series.Points)-1].Price

	// day 0 has zero sine phase except the cos term; both ends stay near
	// their anchors within the variation envelope
	envelope := (synthOHLC.High - synthOHLC.Low) * variationScale
	assert.InDelta(t, synthOHLC.Open, first, envelope)
	assert.InDelta(t, synthOHLC.Close, last, envelope)
}

func TestSynthesizeRounding(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	series := Synthesize(domain.PriceOHLC{Open: 0.123456789, High: 0.2, Low: 0.1, Close: 0.15}, asOf)

	for _, p := range series.Points {
		scaled := p.Price * 1e6
		assert.InDelta(t, math.Round(scaled), scaled, 1e-6, "prices rounded to 6 decimal places")
	}
}

func TestSynthesizeFlatOHLC(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	flat := domain.PriceOHLC{Open: 2, High: 2, Low: 2, Close: 2}
	series := Synthesize(flat, asOf)

	for _, p := range series.Points {
		assert.InDelta(t, 2.0, p.Price, 1e-9)
	}
}
