package domain

import "strings"

// ReportData is the complete data set behind one liquidity report. It is
// assembled fresh per generation request, enriched and validated, then handed
// to the renderer. It is never persisted and never shared between requests.
type ReportData struct {
	Token            string           `json:"token" validate:"required"`
	Date             string           `json:"date" validate:"required"`
	Commentary       string           `json:"commentary,omitempty"`
	Balances         []Balance        `json:"balances"`
	Exchanges        []ExchangeRecord `json:"exchanges"`
	Prices           PriceOHLC        `json:"prices"`
	HistoricalPrices PriceSeries      `json:"historical_prices"`
	BalanceWarning   string           `json:"balance_warning,omitempty"`
}

// Balance is one treasury holding. Notional is always Price*Amount and is
// recomputed on every mutation; it is never authoritative on its own.
type Balance struct {
	Asset    string  `json:"asset" validate:"required"`
	Price    float64 `json:"price" validate:"min=0"`
	Amount   float64 `json:"amount" validate:"min=0"`
	Notional float64 `json:"notional"`
}

// stablecoin tickers whose price is pinned to 1.0
var stableAssets = map[string]bool{
	"STABLES": true,
	"USDC":    true,
	"USDT":    true,
}

// IsStable reports whether the asset is a stablecoin whose price is pinned.
func (b *Balance) IsStable() bool {
	return stableAssets[strings.ToUpper(strings.TrimSpace(b.Asset))]
}

// Recompute refreshes the derived notional, pinning stablecoin prices first.
func (b *Balance) Recompute() {
	if b.IsStable() {
		b.Price = 1.0
	}
	b.Notional = b.Price * b.Amount
}

// SetPrice updates the price and recomputes the notional.
func (b *Balance) SetPrice(price float64) {
	b.Price = price
	b.Recompute()
}

// SetAmount updates the amount and recomputes the notional.
func (b *Balance) SetAmount(amount float64) {
	b.Amount = amount
	b.Recompute()
}

// ExchangeRecord holds the per-venue volume and depth figures for the token.
// MarketShare and LiquidityShare are derived and recomputed whenever their
// inputs change; zero denominators yield zero shares, never NaN.
type ExchangeRecord struct {
	Venue             string  `json:"venue" validate:"required"`
	Symbol            string  `json:"symbol,omitempty"`
	JPEGVolume        float64 `json:"jpeg_volume" validate:"min=0"`
	MarketVolume      float64 `json:"market_volume" validate:"min=0"`
	MarketShare       float64 `json:"market_share"`
	Liquidity2Pct     float64 `json:"liquidity_2pct" validate:"min=0"`
	JPEGLiquidity2Pct float64 `json:"jpeg_liquidity_2pct" validate:"min=0"`
	LiquidityShare    float64 `json:"liquidity_share"`
	AvgSpread         float64 `json:"avg_spread" validate:"min=0"`
}

// PriceOHLC is the four-point price summary for the reporting window.
type PriceOHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// IsZero reports whether no anchor prices were supplied.
func (p PriceOHLC) IsZero() bool {
	return p.Open == 0 && p.High == 0 && p.Low == 0 && p.Close == 0
}

// PricePoint is one daily closing price for the chart.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SeriesSource tags where a price series came from.
type SeriesSource string

const (
	// SeriesReal marks genuine historical prices.
	SeriesReal SeriesSource = "real"
	// SeriesSynthetic marks a deterministic path generated from OHLC anchors.
	SeriesSynthetic SeriesSource = "synthetic"
)

// PriceSeries is a chronologically ordered daily price path together with its
// provenance, so charts and OHLC derivation never mistake a synthesized path
// for market data.
type PriceSeries struct {
	Points []PricePoint `json:"points"`
	Source SeriesSource `json:"source,omitempty"`
}

// IsEmpty reports whether the series has no points.
func (s PriceSeries) IsEmpty() bool {
	return len(s.Points) == 0
}
