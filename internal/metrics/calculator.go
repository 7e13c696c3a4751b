// Package metrics derives the percentage and aggregate figures a report
// presents from the raw per-venue numbers. Everything here is a pure function
// over already-ingested records; derived fields are recomputed whenever an
// input changes and are never hand-edited.
package metrics

import "liqreport/pkg/contracts/domain"

// MarketShare returns jpegVolume/marketVolume as a percentage, 0 when the
// market volume is zero. Never NaN or Inf.
func MarketShare(jpegVolume, marketVolume float64) float64 {
	if marketVolume <= 0 {
		return 0
	}
	return jpegVolume / marketVolume * 100
}

// LiquidityShare returns jpegLiquidity/liquidity as a percentage, 0 when the
// venue liquidity is zero.
func LiquidityShare(jpegLiquidity, liquidity float64) float64 {
	if liquidity <= 0 {
		return 0
	}
	return jpegLiquidity / liquidity * 100
}

// RecomputeRecord refreshes both derived shares of one exchange record.
func RecomputeRecord(r *domain.ExchangeRecord) {
	r.MarketShare = MarketShare(r.JPEGVolume, r.MarketVolume)
	r.LiquidityShare = LiquidityShare(r.JPEGLiquidity2Pct, r.Liquidity2Pct)
}

// RecomputeAll refreshes every derived field in the report: per-record shares
// and per-balance notionals. Ingested share columns are overwritten; the raw
// volume and depth figures stay authoritative.
func RecomputeAll(data *domain.ReportData) {
	for i := range data.Exchanges {
		RecomputeRecord(&data.Exchanges[i])
	}
	for i := range data.Balances {
		data.Balances[i].Recompute()
	}
}
