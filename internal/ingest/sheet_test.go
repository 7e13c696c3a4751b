package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTabSource struct {
	tabs map[string][][]interface{}
	errs map[string]error
}

func (f *fakeTabSource) Values(_ context.Context, _, tab string) ([][]interface{}, error) {
	if err := f.errs[tab]; err != nil {
		return nil, err
	}
	return f.tabs[tab], nil
}

func liqTabFixture() [][]interface{} {
	return [][]interface{}{
		{"ABC"},
		{"Exchange", "Symbol", "JPEG Volume ($)", "Market Volume ($)", "2% Liquidity Avg ($)", "2% Liquidity"},
		{"Binance", "ABC/USDT", "$1,000", "$10,000", "500", "100"},
		{"", "ignored"},
		{"OKX", "ABC/USDT", 250.0, 5000.0, "300", "60"},
	}
}

func TestExtractSheetID(t *testing.T) {
	id, err := ExtractSheetID("https://docs.google.com/spreadsheets/d/1AbC-d_3F/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_3F", id)

	_, err = ExtractSheetID("https://example.com/not-a-sheet")
	assert.ErrorIs(t, err, ErrInvalidSheetURL)
}

func TestSheetImport(t *testing.T) {
	source := &fakeTabSource{tabs: map[string][][]interface{}{
		"Liq": liqTabFixture(),
		"Bal": {
			{"", "Wallet1", "", ""},
			{"row0", "USDT", "5000", "2025-01-01"},
			{"row1", "ABC", "1200", "2025-01-01"},
		},
		"Blurb": {
			{"Strong", "month"},
			{},
			{"Depth improved."},
		},
	}}

	imp := NewSheetImporterWithSource(source, time.Second, nil)
	data, err := imp.Import(context.Background(), "https://docs.google.com/spreadsheets/d/sheet123/edit", "2025-02-01")
	require.NoError(t, err)

	assert.Equal(t, "ABC", data.Token)
	assert.Equal(t, "2025-02-01", data.Date)
	assert.Equal(t, "Strong month\nDepth improved.", data.Commentary)

	require.Len(t, data.Exchanges, 2)
	assert.Equal(t, "Binance", data.Exchanges[0].Venue)
	assert.InDelta(t, 1000.0, data.Exchanges[0].JPEGVolume, 1e-9)
	assert.InDelta(t, 10000.0, data.Exchanges[0].MarketVolume, 1e-9)
	assert.Equal(t, "OKX", data.Exchanges[1].Venue)
	assert.InDelta(t, 250.0, data.Exchanges[1].JPEGVolume, 1e-9)

	// headerless positional balances: asset at cell 1, amount at cell 2
	require.Len(t, data.Balances, 2)
	usdt := data.Balances[0]
	assert.Equal(t, "USDT", usdt.Asset)
	assert.InDelta(t, 1.0, usdt.Price, 1e-9, "stablecoin price pinned")
	assert.InDelta(t, 5000.0, usdt.Amount, 1e-9)
	assert.InDelta(t, 5000.0, usdt.Notional, 1e-9)

	abc := data.Balances[1]
	assert.Equal(t, "ABC", abc.Asset)
	assert.Zero(t, abc.Price, "non-stable price left for market-data enrichment")

	assert.NotEmpty(t, data.BalanceWarning, "as-of date differs from report date")
	assert.Contains(t, data.BalanceWarning, "2025-01-01")
}

func TestSheetImportNoWarningWhenDatesMatch(t *testing.T) {
	source := &fakeTabSource{tabs: map[string][][]interface{}{
		"Liq":   liqTabFixture(),
		"Bal":   {{"", "USDT", "100", "2025-02-01"}},
		"Blurb": {},
	}}

	imp := NewSheetImporterWithSource(source, time.Second, nil)
	data, err := imp.Import(context.Background(), "https://docs.google.com/spreadsheets/d/sheet123/", "2025-02-01")
	require.NoError(t, err)
	assert.Empty(t, data.BalanceWarning)
}

func TestSheetImportAllOrNothing(t *testing.T) {
	source := &fakeTabSource{
		tabs: map[string][][]interface{}{
			"Liq":   liqTabFixture(),
			"Blurb": {},
		},
		errs: map[string]error{"Bal": errors.New("404: sheet range not found")},
	}

	imp := NewSheetImporterWithSource(source, time.Second, nil)
	_, err := imp.Import(context.Background(), "https://docs.google.com/spreadsheets/d/sheet123/", "2025-02-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Bal" tab`)
}

func TestSheetImportInvalidURL(t *testing.T) {
	imp := NewSheetImporterWithSource(&fakeTabSource{}, time.Second, nil)
	_, err := imp.Import(context.Background(), "not a url", "2025-02-01")
	assert.ErrorIs(t, err, ErrInvalidSheetURL)
}

func TestSheetImportEmptyBalancesGetPlaceholder(t *testing.T) {
	source := &fakeTabSource{tabs: map[string][][]interface{}{
		"Liq":   liqTabFixture(),
		"Bal":   {},
		"Blurb": {},
	}}

	imp := NewSheetImporterWithSource(source, time.Second, nil)
	data, err := imp.Import(context.Background(), "https://docs.google.com/spreadsheets/d/sheet123/", "2025-02-01")
	require.NoError(t, err)
	require.Len(t, data.Balances, 1)
	assert.Equal(t, "USDT", data.Balances[0].Asset)
	assert.InDelta(t, 1.0, data.Balances[0].Price, 1e-9)
}

func TestSheetImportMissingLiqHeader(t *testing.T) {
	source := &fakeTabSource{tabs: map[string][][]interface{}{
		"Liq":   {{"ABC"}, {"Venue", "Pair"}},
		"Bal":   {},
		"Blurb": {},
	}}

	imp := NewSheetImporterWithSource(source, time.Second, nil)
	_, err := imp.Import(context.Background(), "https://docs.google.com/spreadsheets/d/sheet123/", "2025-02-01")
	assert.ErrorIs(t, err, ErrMissingHeader)
}
