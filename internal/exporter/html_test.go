package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liqreport/pkg/contracts/domain"
)

func renderFixture() *domain.ReportData {
	return &domain.ReportData{
		Token:      "ABC",
		Date:       "2025-02-01",
		Commentary: "Depth improved on **Binance**.",
		Balances: []domain.Balance{
			{Asset: "USDT", Price: 1, Amount: 5000, Notional: 5000},
			{Asset: "ABC", Price: 0.42, Amount: 100000, Notional: 42000},
		},
		Exchanges: []domain.ExchangeRecord{
			{Venue: "Binance", Symbol: "ABC/USDT", JPEGVolume: 1000, MarketVolume: 10000, MarketShare: 10, Liquidity2Pct: 400, JPEGLiquidity2Pct: 100, LiquidityShare: 25, AvgSpread: 12},
		},
		Prices: domain.PriceOHLC{Open: 0.4, High: 0.5, Low: 0.35, Close: 0.42},
		HistoricalPrices: domain.PriceSeries{
			Source: domain.SeriesSynthetic,
			Points: []domain.PricePoint{
				{Date: "2025-01-01", Price: 0.40},
				{Date: "2025-01-15", Price: 0.45},
				{Date: "2025-02-01", Price: 0.42},
			},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	out, err := r.Render(renderFixture())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Monthly Liquidity Report")
	assert.Contains(t, html, "ABC")
	assert.Contains(t, html, "2025-02-01")
	assert.Contains(t, html, "Binance")
	assert.Contains(t, html, "$1,000")
	assert.Contains(t, html, "$10,000")
	assert.Contains(t, html, "10.00%")
	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, "not historical market data", "synthetic series gets a provenance footnote")
	assert.Contains(t, html, "<strong>Binance</strong>", "commentary markdown rendered")
}

func TestRenderHTMLRealSeriesHasNoFootnote(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	data := renderFixture()
	data.HistoricalPrices.Source = domain.SeriesReal

	out, err := r.Render(data)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "not historical market data")
}

func TestRenderHTMLWithoutSeriesOmitsChart(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	data := renderFixture()
	data.HistoricalPrices = domain.PriceSeries{}

	out, err := r.Render(data)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<svg")
}

func TestRenderHTMLEscapesUserStrings(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	data := renderFixture()
	data.Exchanges[0].Venue = `<script>alert(1)</script>`

	out, err := r.Render(data)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert(1)</script>")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1,234,568", formatCurrency(1234567.89))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "12.34%", formatPercent(12.34))
	assert.Equal(t, "$2.50", formatPrice(2.5))
	assert.Equal(t, "$0.420000", formatPrice(0.42))
	assert.Equal(t, "$0", formatCurrency(0))
	assert.Equal(t, "-1,000", formatNumber(-1000))
}

func TestBuildChartSVG(t *testing.T) {
	svg := buildChartSVG(domain.PriceSeries{Points: []domain.PricePoint{
		{Date: "2025-01-01", Price: 1},
		{Date: "2025-01-02", Price: 2},
		{Date: "2025-01-03", Price: 1.5},
	}})
	assert.Contains(t, svg, "<polyline")
	assert.Contains(t, svg, "2025-01-01")
	assert.Contains(t, svg, "2025-01-03")

	assert.Empty(t, buildChartSVG(domain.PriceSeries{}))
	assert.Empty(t, buildChartSVG(domain.PriceSeries{Points: []domain.PricePoint{{Date: "2025-01-01", Price: 1}}}))
}
