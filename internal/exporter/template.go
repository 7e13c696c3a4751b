package exporter

// reportTemplate is the printable report layout. The document is fully
// self-contained: inline styles, inline SVG chart, a print button that hides
// itself while printing.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Monthly Liquidity Report - {{.Data.Token}} - {{.Data.Date}}</title>
<style>
  body { font-family: 'Bai Jamjuree', 'Helvetica Neue', sans-serif; color: #111827; margin: 0; background: #f9fafb; }
  .report-container { max-width: 860px; margin: 0 auto; padding: 40px 32px; background: #fff; }
  h1 { font-size: 28px; margin: 0 0 4px; }
  h2 { font-size: 18px; margin: 32px 0 12px; border-bottom: 2px solid #8B9AFD; padding-bottom: 6px; }
  .report-date { color: #6b7280; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th { text-align: left; color: #6b7280; text-transform: uppercase; font-size: 11px; padding: 8px 10px; border-bottom: 1px solid #e5e7eb; }
  td { padding: 8px 10px; border-bottom: 1px solid #f3f4f6; }
  th.num, td.num { text-align: right; }
  .summary-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 12px; }
  .summary-card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px; background: #f9fafb; }
  .summary-card .label { font-size: 11px; color: #6b7280; text-transform: uppercase; }
  .summary-card .value { font-size: 20px; font-weight: 600; }
  .warning { background: #fef3c7; border: 1px solid #fcd34d; border-radius: 8px; padding: 12px; margin: 16px 0; font-size: 14px; }
  .commentary { font-size: 14px; line-height: 1.6; }
  .footnote { font-size: 12px; color: #6b7280; font-style: italic; }
  #print-btn { position: fixed; top: 20px; right: 20px; padding: 12px 24px; background: #8B9AFD; color: #fff; border: none; border-radius: 8px; font-size: 16px; font-weight: 600; cursor: pointer; }
  @media print {
    #print-btn { display: none; }
    body { background: #fff; }
    .report-container { max-width: 100%; page-break-after: avoid; }
  }
</style>
</head>
<body>
<div class="report-container">
  <h1>Monthly Liquidity Report &mdash; {{.Data.Token}}</h1>
  <div class="report-date">{{.Data.Date}}</div>

  {{if .Data.BalanceWarning}}<div class="warning">{{.Data.BalanceWarning}}</div>{{end}}

  {{if .CommentaryHTML}}
  <h2>Commentary</h2>
  <div class="commentary">{{.CommentaryHTML}}</div>
  {{end}}

  <h2>Balances</h2>
  <table>
    <thead><tr><th>Asset</th><th class="num">Price</th><th class="num">Amount</th><th class="num">Notional</th></tr></thead>
    <tbody>
    {{range .Data.Balances}}
      <tr><td>{{.Asset}}</td><td class="num">{{price .Price}}</td><td class="num">{{number .Amount}}</td><td class="num">{{currency .Notional}}</td></tr>
    {{end}}
      <tr><td><strong>Total</strong></td><td></td><td></td><td class="num"><strong>{{currency .Summary.TotalNotional}}</strong></td></tr>
    </tbody>
  </table>

  <h2>Liquidity Statistics</h2>
  <table>
    <thead><tr><th>Exchange</th><th>Symbol</th><th class="num">2% Liquidity</th><th class="num">JPEG 2% Liquidity</th><th class="num">Liquidity Share</th><th class="num">Avg Spread (bps)</th></tr></thead>
    <tbody>
    {{range .Data.Exchanges}}
      <tr><td>{{.Venue}}</td><td>{{.Symbol}}</td><td class="num">{{currency .Liquidity2Pct}}</td><td class="num">{{currency .JPEGLiquidity2Pct}}</td><td class="num">{{percent .LiquidityShare}}</td><td class="num">{{number .AvgSpread}}</td></tr>
    {{end}}
    </tbody>
  </table>

  <h2>Volume Statistics</h2>
  <table>
    <thead><tr><th>Exchange</th><th>Symbol</th><th class="num">JPEG Volume</th><th class="num">Market Volume</th><th class="num">Market Share</th></tr></thead>
    <tbody>
    {{range .Data.Exchanges}}
      <tr><td>{{.Venue}}</td><td>{{.Symbol}}</td><td class="num">{{currency .JPEGVolume}}</td><td class="num">{{currency .MarketVolume}}</td><td class="num">{{percent .MarketShare}}</td></tr>
    {{end}}
    </tbody>
  </table>

  <h2>Summary</h2>
  <div class="summary-grid">
    <div class="summary-card"><div class="label">Avg 2% Liquidity (Market)</div><div class="value">{{currency .Summary.GlobalAvgLiquidity}}</div></div>
    <div class="summary-card"><div class="label">Avg 2% Liquidity (JPEG)</div><div class="value">{{currency .Summary.JPEGAvgLiquidity}}</div></div>
    <div class="summary-card"><div class="label">JPEG Liquidity Share</div><div class="value">{{percent .Summary.JPEGLiquidityShare}}</div></div>
    <div class="summary-card"><div class="label">Total Market Volume</div><div class="value">{{currency .Summary.GlobalTotalVolume}}</div></div>
    <div class="summary-card"><div class="label">Total JPEG Volume</div><div class="value">{{currency .Summary.JPEGTotalVolume}}</div></div>
    <div class="summary-card"><div class="label">JPEG Market Share</div><div class="value">{{percent .Summary.JPEGMarketShare}}</div></div>
  </div>

  {{if .ChartSVG}}
  <h2>Price Chart</h2>
  {{.ChartSVG}}
  {{if .Synthetic}}<p class="footnote">Chart interpolated from reporting-period OHLC; not historical market data.</p>{{end}}
  {{end}}

  <h2>Reporting Prices (OHLC)</h2>
  <div class="summary-grid">
    <div class="summary-card"><div class="label">Open</div><div class="value">{{price .Data.Prices.Open}}</div></div>
    <div class="summary-card"><div class="label">High</div><div class="value">{{price .Data.Prices.High}}</div></div>
    <div class="summary-card"><div class="label">Low</div><div class="value">{{price .Data.Prices.Low}}</div></div>
    <div class="summary-card"><div class="label">Close</div><div class="value">{{price .Data.Prices.Close}}</div></div>
  </div>
</div>
<button id="print-btn" onclick="window.print()">Print / Save as PDF</button>
</body>
</html>
`
