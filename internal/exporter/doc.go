// Package exporter renders validated report data into its final artifacts.
//
// HTMLRenderer produces the self-contained printable document: balances,
// liquidity and volume tables, summary statistics, an inline SVG price chart,
// and the commentary rendered from markdown.
//
// PDFPrinter drives headless Chrome to print that document to PDF, matching
// the print-to-PDF workflow the report is designed around.
package exporter
