package exporter

import (
	"fmt"
	"strings"

	"liqreport/pkg/contracts/domain"
)

const (
	chartWidth   = 760
	chartHeight  = 300
	chartPadding = 50
)

// buildChartSVG renders the daily price series as an inline SVG line chart.
// An empty or single-point series yields an empty string and the template
// omits the chart section.
func buildChartSVG(series domain.PriceSeries) string {
	points := series.Points
	if len(points) < 2 {
		return ""
	}

	minP, maxP := points[0].Price, points[0].Price
	for _, p := range points {
		if p.Price < minP {
			minP = p.Price
		}
		if p.Price > maxP {
			maxP = p.Price
		}
	}
	span := maxP - minP
	if span == 0 {
		span = 1 // flat series still draws a centered line
	}

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)

	var coords []string
	for i, p := range points {
		x := float64(chartPadding) + plotW*float64(i)/float64(len(points)-1)
		y := float64(chartHeight-chartPadding) - plotH*(p.Price-minP)/span
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img">`, chartWidth, chartHeight)

	// horizontal gridlines with price labels
	for i := 0; i <= 4; i++ {
		ratio := float64(i) / 4
		y := float64(chartPadding) + plotH*ratio
		price := maxP - span*ratio
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#e5e7eb" stroke-width="1"/>`,
			chartPadding, y, chartWidth-chartPadding, y)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" text-anchor="end" font-size="11" fill="#6b7280">%s</text>`,
			chartPadding-6, y+4, formatPrice(price))
	}

	// first / middle / last date labels
	for _, idx := range []int{0, (len(points) - 1) / 2, len(points) - 1} {
		x := float64(chartPadding) + plotW*float64(idx)/float64(len(points)-1)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" font-size="11" fill="#374151">%s</text>`,
			x, chartHeight-12, points[idx].Date)
	}

	fmt.Fprintf(&b, `<polyline fill="none" stroke="#223FFA" stroke-width="2" points="%s"/>`,
		strings.Join(coords, " "))
	b.WriteString(`</svg>`)

	return b.String()
}
