package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liqreport/internal/exporter"
	"liqreport/pkg/contracts/domain"
)

type fakePrices struct {
	price   float64
	history domain.PriceSeries
	histErr error
}

func (f *fakePrices) EnrichBalances(_ context.Context, balances []domain.Balance) []domain.Balance {
	for i := range balances {
		if !balances[i].IsStable() && balances[i].Price == 0 {
			balances[i].SetPrice(f.price)
			continue
		}
		balances[i].Recompute()
	}
	return balances
}

func (f *fakePrices) History(_ context.Context, _ string) (domain.PriceSeries, error) {
	return f.history, f.histErr
}

type fakeSheets struct {
	data *domain.ReportData
	err  error
}

func (f *fakeSheets) Import(_ context.Context, _, _ string) (*domain.ReportData, error) {
	return f.data, f.err
}

func newTestService(t *testing.T, sheets SheetSource, prices PriceSource) *ReportService {
	t.Helper()
	renderer, err := exporter.NewHTMLRenderer(nil)
	require.NoError(t, err)
	return NewReportService(sheets, prices, renderer, nil)
}

const sampleCSV = "ABC\n" +
	"Exchange,Symbol,JPEG Volume ($),Market Volume ($)\n" +
	"Binance,ABC/USDT,\"$1,000\",\"$10,000\"\n"

func TestFromCSV(t *testing.T) {
	svc := newTestService(t, nil, nil)

	data, err := svc.FromCSV(context.Background(), sampleCSV, "2025-02-01", "solid month")
	require.NoError(t, err)

	assert.Equal(t, "ABC", data.Token)
	assert.Equal(t, "2025-02-01", data.Date)
	assert.Equal(t, "solid month", data.Commentary)
	require.Len(t, data.Exchanges, 1)
	assert.InDelta(t, 10.0, data.Exchanges[0].MarketShare, 1e-9, "shares derived on assembly")
	require.Len(t, data.Balances, 1)
	assert.Equal(t, "USDT", data.Balances[0].Asset)
}

func TestFromSheetEnrichesBalances(t *testing.T) {
	imported := &domain.ReportData{
		Token: "ABC",
		Date:  "2025-02-01",
		Balances: []domain.Balance{
			{Asset: "ABC", Amount: 100},
			{Asset: "USDT", Amount: 5000},
		},
		Exchanges: []domain.ExchangeRecord{
			{Venue: "Binance", JPEGVolume: 100, MarketVolume: 1000},
		},
	}
	svc := newTestService(t, &fakeSheets{data: imported}, &fakePrices{price: 0.5})

	data, err := svc.FromSheet(context.Background(), "https://docs.google.com/spreadsheets/d/x/", "2025-02-01")
	require.NoError(t, err)

	assert.InDelta(t, 0.5, data.Balances[0].Price, 1e-9)
	assert.InDelta(t, 50.0, data.Balances[0].Notional, 1e-9)
	assert.InDelta(t, 1.0, data.Balances[1].Price, 1e-9)
	assert.InDelta(t, 10.0, data.Exchanges[0].MarketShare, 1e-9)
}

func TestFromSheetUnavailable(t *testing.T) {
	svc := newTestService(t, nil, nil)
	_, err := svc.FromSheet(context.Background(), "https://docs.google.com/spreadsheets/d/x/", "2025-02-01")
	assert.ErrorIs(t, err, ErrSheetImportUnavailable)
}

func TestGenerateRendersValidReport(t *testing.T) {
	svc := newTestService(t, nil, nil)

	data, err := svc.FromCSV(context.Background(), sampleCSV, "2025-02-01", "")
	require.NoError(t, err)
	data.Prices = domain.PriceOHLC{Open: 1, High: 1.2, Low: 0.9, Close: 1.1}

	html, verrs, err := svc.Generate(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, verrs)
	assert.Contains(t, string(html), "Monthly Liquidity Report")

	assert.Equal(t, domain.SeriesSynthetic, data.HistoricalPrices.Source, "series synthesized from OHLC anchors")
	assert.NotEmpty(t, data.HistoricalPrices.Points)
}

func TestGenerateBlocksOnValidation(t *testing.T) {
	svc := newTestService(t, nil, nil)

	data := &domain.ReportData{Token: "", Date: "2025-02-01"}
	html, verrs, err := svc.Generate(context.Background(), data)

	require.NoError(t, err)
	assert.Nil(t, html, "rendering must not proceed on validation findings")
	require.Len(t, verrs, 1)
	assert.Contains(t, verrs[0].Message, "Token")
}

func TestGeneratePrefersRealHistory(t *testing.T) {
	history := domain.PriceSeries{
		Source: domain.SeriesReal,
		Points: []domain.PricePoint{
			{Date: "2025-01-01", Price: 1.0},
			{Date: "2025-01-02", Price: 1.1},
		},
	}
	svc := newTestService(t, nil, &fakePrices{history: history})

	data, err := svc.FromCSV(context.Background(), sampleCSV, "2025-02-01", "")
	require.NoError(t, err)
	data.Prices = domain.PriceOHLC{Open: 1, High: 1.2, Low: 0.9, Close: 1.1}

	_, verrs, err := svc.Generate(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, verrs)
	assert.Equal(t, domain.SeriesReal, data.HistoricalPrices.Source)
	assert.Len(t, data.HistoricalPrices.Points, 2)
}

func TestGenerateFallsBackToSynthesisOnLookupFailure(t *testing.T) {
	svc := newTestService(t, nil, &fakePrices{histErr: errors.New("rate limited")})

	data, err := svc.FromCSV(context.Background(), sampleCSV, "2025-02-01", "")
	require.NoError(t, err)
	data.Prices = domain.PriceOHLC{Open: 1, High: 1.2, Low: 0.9, Close: 1.1}

	_, verrs, err := svc.Generate(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, verrs)
	assert.Equal(t, domain.SeriesSynthetic, data.HistoricalPrices.Source)
}

func TestGenerateRecomputesStaleDerivedFields(t *testing.T) {
	svc := newTestService(t, nil, nil)

	data := &domain.ReportData{
		Token: "ABC",
		Date:  "2025-02-01",
		Exchanges: []domain.ExchangeRecord{
			{Venue: "Binance", JPEGVolume: 1000, MarketVolume: 10000, MarketShare: 999},
		},
	}

	_, verrs, err := svc.Generate(context.Background(), data)
	require.NoError(t, err)
	assert.Empty(t, verrs, "stale share is recomputed before validation, not rejected")
	assert.InDelta(t, 10.0, data.Exchanges[0].MarketShare, 1e-9)
}
