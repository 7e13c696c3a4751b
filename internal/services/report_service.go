// Package services orchestrates report generation: ingestion, price
// enrichment, derived-metric recomputation, validation, and rendering.
// Every request owns its ReportData for the whole flow; nothing is shared
// or persisted across requests.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"liqreport/internal/exporter"
	"liqreport/internal/ingest"
	"liqreport/internal/metrics"
	"liqreport/internal/pricing"
	"liqreport/internal/validation"
	"liqreport/pkg/contracts/domain"
)

// ErrSheetImportUnavailable is returned when no Sheets API key was configured.
var ErrSheetImportUnavailable = errors.New("sheet import is not configured")

// PriceSource is the market-data dependency of the report service.
type PriceSource interface {
	EnrichBalances(ctx context.Context, balances []domain.Balance) []domain.Balance
	History(ctx context.Context, symbol string) (domain.PriceSeries, error)
}

// SheetSource imports a full report from a spreadsheet URL.
type SheetSource interface {
	Import(ctx context.Context, url, reportDate string) (*domain.ReportData, error)
}

// Renderer renders validated report data to a document.
type Renderer interface {
	Render(data *domain.ReportData) ([]byte, error)
}

// ReportService assembles, enriches, validates, and renders liquidity
// reports.
type ReportService struct {
	sheets   SheetSource
	prices   PriceSource
	renderer Renderer
	logger   *slog.Logger
}

// NewReportService wires the service. sheets may be nil when Sheet import is
// not configured; prices may be nil to disable market-data enrichment.
func NewReportService(sheets SheetSource, prices PriceSource, renderer Renderer, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		sheets:   sheets,
		prices:   prices,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "report_service")),
	}
}

// FromCSV builds a report skeleton from CSV text: token and exchanges from
// the grid, a single placeholder stablecoin balance, caller-supplied date and
// commentary.
func (s *ReportService) FromCSV(ctx context.Context, csvText, date, commentary string) (*domain.ReportData, error) {
	parsed, err := ingest.ParseCSVString(csvText)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, parsed, date, commentary), nil
}

// FromXLSX builds a report skeleton from an Excel workbook, same contract as
// FromCSV.
func (s *ReportService) FromXLSX(ctx context.Context, r io.Reader, date, commentary string) (*domain.ReportData, error) {
	parsed, err := ingest.ParseXLSX(r)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, parsed, date, commentary), nil
}

func (s *ReportService) assemble(ctx context.Context, parsed *ingest.TokenExchanges, date, commentary string) *domain.ReportData {
	data := &domain.ReportData{
		Token:      parsed.Token,
		Date:       date,
		Commentary: commentary,
		Balances:   []domain.Balance{{Asset: "USDT", Price: 1.0}},
		Exchanges:  parsed.Exchanges,
	}
	metrics.RecomputeAll(data)

	s.logger.InfoContext(ctx, "report assembled from grid",
		slog.String("token", data.Token),
		slog.Int("exchanges", len(data.Exchanges)),
	)
	return data
}

// FromSheet imports a full report from a three-tab spreadsheet and enriches
// balance prices from market data.
func (s *ReportService) FromSheet(ctx context.Context, url, date string) (*domain.ReportData, error) {
	if s.sheets == nil {
		return nil, ErrSheetImportUnavailable
	}

	data, err := s.sheets.Import(ctx, url, date)
	if err != nil {
		return nil, err
	}

	if s.prices != nil {
		data.Balances = s.prices.EnrichBalances(ctx, data.Balances)
	}
	metrics.RecomputeAll(data)
	return data, nil
}

// Generate validates the report and renders it. Derived fields are
// recomputed first so stale shares or notionals can never reach the
// document; a missing price series is filled from market history when
// available and synthesized from the OHLC anchors otherwise. A non-empty
// validation list blocks rendering and is returned for the caller to surface
// verbatim.
func (s *ReportService) Generate(ctx context.Context, data *domain.ReportData) ([]byte, []validation.ValidationError, error) {
	metrics.RecomputeAll(data)
	s.ensurePriceSeries(ctx, data)

	if verrs := validation.Validate(data); len(verrs) > 0 {
		s.logger.InfoContext(ctx, "report blocked by validation",
			slog.String("token", data.Token),
			slog.Int("violations", len(verrs)),
		)
		return nil, verrs, nil
	}

	html, err := s.renderer.Render(data)
	if err != nil {
		return nil, nil, fmt.Errorf("render report: %w", err)
	}
	return html, nil, nil
}

// ensurePriceSeries fills HistoricalPrices when the report came in without
// one. Real market history wins; the deterministic synthetic path is the
// fallback when the index has nothing or lookups are disabled. Lookup
// failures degrade silently to synthesis.
func (s *ReportService) ensurePriceSeries(ctx context.Context, data *domain.ReportData) {
	if !data.HistoricalPrices.IsEmpty() {
		if data.HistoricalPrices.Source == "" {
			data.HistoricalPrices.Source = domain.SeriesReal
		}
		return
	}

	if s.prices != nil && data.Token != "" {
		series, err := s.prices.History(ctx, data.Token)
		if err != nil {
			s.logger.WarnContext(ctx, "price history lookup failed",
				slog.String("token", data.Token),
				slog.String("error", err.Error()),
			)
		} else if !series.IsEmpty() {
			data.HistoricalPrices = series
			return
		}
	}

	if data.Prices.IsZero() {
		return
	}
	asOf, err := time.Parse("2006-01-02", data.Date)
	if err != nil {
		// date format is not validated beyond presence; no anchor, no chart
		return
	}
	data.HistoricalPrices = pricing.Synthesize(data.Prices, asOf)
}

// exporter.HTMLRenderer satisfies Renderer.
var _ Renderer = (*exporter.HTMLRenderer)(nil)
