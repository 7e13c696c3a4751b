package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVEndToEnd(t *testing.T) {
	csvText := "ABC\n" +
		"Exchange,Symbol,JPEG Volume ($),Market Volume ($)\n" +
		"Binance,ABC/USDT,\"$1,000\",\"$10,000\"\n"

	result, err := ParseCSVString(csvText)
	require.NoError(t, err)

	assert.Equal(t, "ABC", result.Token)
	require.Len(t, result.Exchanges, 1)

	rec := result.Exchanges[0]
	assert.Equal(t, "Binance", rec.Venue)
	assert.Equal(t, "ABC/USDT", rec.Symbol)
	assert.InDelta(t, 1000.0, rec.JPEGVolume, 1e-9)
	assert.InDelta(t, 10000.0, rec.MarketVolume, 1e-9)
}

func TestParseCSVPreservesRowOrder(t *testing.T) {
	csvText := "XYZ\n" +
		"Exchange,Symbol,JPEG Volume ($),Market Volume ($),2% Liquidity Avg ($),2% Liquidity,Avg Spread (bps)\n" +
		"Binance,XYZ/USDT,100,1000,50,10,12\n" +
		"OKX,XYZ/USDT,200,2000,60,20,8\n" +
		"Kraken,XYZ/USD,300,3000,70,30,5\n"

	result, err := ParseCSVString(csvText)
	require.NoError(t, err)

	require.Len(t, result.Exchanges, 3)
	assert.Equal(t, "Binance", result.Exchanges[0].Venue)
	assert.Equal(t, "OKX", result.Exchanges[1].Venue)
	assert.Equal(t, "Kraken", result.Exchanges[2].Venue)
	assert.InDelta(t, 70.0, result.Exchanges[2].Liquidity2Pct, 1e-9)
	assert.InDelta(t, 30.0, result.Exchanges[2].JPEGLiquidity2Pct, 1e-9)
	assert.InDelta(t, 5.0, result.Exchanges[2].AvgSpread, 1e-9)
}

func TestParseCSVSkipsRowsWithoutVenue(t *testing.T) {
	csvText := "ABC\n" +
		"Exchange,Symbol,JPEG Volume ($),Market Volume ($)\n" +
		",orphan,1,2\n" +
		"Binance,ABC/USDT,100,1000\n" +
		"\n" +
		"   ,,,\n" +
		"OKX,ABC/USDT,200,2000\n"

	result, err := ParseCSVString(csvText)
	require.NoError(t, err)
	require.Len(t, result.Exchanges, 2)
	assert.Equal(t, "Binance", result.Exchanges[0].Venue)
	assert.Equal(t, "OKX", result.Exchanges[1].Venue)
}

func TestParseCSVMissingHeader(t *testing.T) {
	csvText := "ABC\n" +
		"Venue,Pair,Volume\n" +
		"Binance,ABC/USDT,100\n"

	_, err := ParseCSVString(csvText)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParseCSVNoDataRows(t *testing.T) {
	csvText := "ABC\n" +
		"Exchange,Symbol,JPEG Volume ($),Market Volume ($)\n"

	_, err := ParseCSVString(csvText)
	assert.ErrorIs(t, err, ErrNoExchangeData)
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParseCSVAbsentColumnsFallBackToZero(t *testing.T) {
	csvText := "ABC\n" +
		"Exchange,Symbol\n" +
		"Binance,ABC/USDT\n"

	result, err := ParseCSVString(csvText)
	require.NoError(t, err)
	require.Len(t, result.Exchanges, 1)
	assert.Zero(t, result.Exchanges[0].JPEGVolume)
	assert.Zero(t, result.Exchanges[0].MarketVolume)
	assert.Zero(t, result.Exchanges[0].AvgSpread)
}
