package metrics

import "liqreport/pkg/contracts/domain"

// Summary holds the report-level aggregate statistics consumed by the
// renderer. It is computed on demand and never stored on the report model.
//
// Two aggregation conventions existed in earlier revisions of these figures:
// liquidity uses mean-of-venue-depth then ratio, volume uses sum then ratio.
// Both are applied here, in one place, so the summary percentages are
// consistent across every render.
type Summary struct {
	GlobalAvgLiquidity float64 `json:"global_avg_liquidity"`
	JPEGAvgLiquidity   float64 `json:"jpeg_avg_liquidity"`
	JPEGLiquidityShare float64 `json:"jpeg_liquidity_share"`
	GlobalTotalVolume  float64 `json:"global_total_volume"`
	JPEGTotalVolume    float64 `json:"jpeg_total_volume"`
	JPEGMarketShare    float64 `json:"jpeg_market_share"`
	TotalNotional      float64 `json:"total_notional"`
}

// Summarize computes the aggregate statistics over all exchange records and
// balances. Zero denominators yield zero shares.
func Summarize(data *domain.ReportData) Summary {
	var s Summary

	for _, e := range data.Exchanges {
		s.GlobalAvgLiquidity += e.Liquidity2Pct
		s.JPEGAvgLiquidity += e.JPEGLiquidity2Pct
		s.GlobalTotalVolume += e.MarketVolume
		s.JPEGTotalVolume += e.JPEGVolume
	}
	if n := float64(len(data.Exchanges)); n > 0 {
		s.GlobalAvgLiquidity /= n
		s.JPEGAvgLiquidity /= n
	}

	s.JPEGLiquidityShare = LiquidityShare(s.JPEGAvgLiquidity, s.GlobalAvgLiquidity)
	s.JPEGMarketShare = MarketShare(s.JPEGTotalVolume, s.GlobalTotalVolume)

	for _, b := range data.Balances {
		s.TotalNotional += b.Notional
	}

	return s
}
