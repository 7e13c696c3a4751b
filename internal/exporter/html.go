package exporter

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"

	"liqreport/internal/metrics"
	"liqreport/pkg/contracts/domain"
)

// HTMLRenderer turns a validated ReportData into a self-contained printable
// HTML document. Callers are expected to have run validation first; the
// renderer itself does not re-check invariants.
type HTMLRenderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
	logger   *slog.Logger
}

// NewHTMLRenderer parses the report template.
func NewHTMLRenderer(logger *slog.Logger) (*HTMLRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"currency": formatCurrency,
		"number":   formatNumber,
		"percent":  formatPercent,
		"price":    formatPrice,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}

	return &HTMLRenderer{
		tmpl:     tmpl,
		markdown: goldmark.New(),
		logger:   logger,
	}, nil
}

// reportView is the template context: the report itself plus everything
// derived at render time.
type reportView struct {
	Data           *domain.ReportData
	Summary        metrics.Summary
	CommentaryHTML template.HTML
	ChartSVG       template.HTML
	Synthetic      bool
}

// Render produces the full HTML document. Commentary is treated as markdown;
// the chart is an inline SVG; synthetic price series get a provenance
// footnote so they are never mistaken for market data.
func (r *HTMLRenderer) Render(data *domain.ReportData) ([]byte, error) {
	commentary, err := r.renderCommentary(data.Commentary)
	if err != nil {
		return nil, err
	}

	view := reportView{
		Data:           data,
		Summary:        metrics.Summarize(data),
		CommentaryHTML: commentary,
		ChartSVG:       template.HTML(buildChartSVG(data.HistoricalPrices)),
		Synthetic:      data.HistoricalPrices.Source == domain.SeriesSynthetic,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}

	r.logger.Info("report rendered",
		slog.String("token", data.Token),
		slog.String("date", data.Date),
		slog.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) renderCommentary(commentary string) (template.HTML, error) {
	if commentary == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(commentary), &buf); err != nil {
		return "", fmt.Errorf("render commentary: %w", err)
	}
	return template.HTML(buf.String()), nil
}
