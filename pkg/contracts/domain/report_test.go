package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceRecompute(t *testing.T) {
	tests := []struct {
		name         string
		balance      Balance
		wantPrice    float64
		wantNotional float64
	}{
		{
			name:         "plain asset",
			balance:      Balance{Asset: "ABC", Price: 2.5, Amount: 100},
			wantPrice:    2.5,
			wantNotional: 250,
		},
		{
			name:         "usdt pinned to one",
			balance:      Balance{Asset: "USDT", Price: 0.97, Amount: 5000},
			wantPrice:    1.0,
			wantNotional: 5000,
		},
		{
			name:         "stables pinned case insensitive",
			balance:      Balance{Asset: "stables", Price: 0, Amount: 300},
			wantPrice:    1.0,
			wantNotional: 300,
		},
		{
			name:         "zero amount",
			balance:      Balance{Asset: "ABC", Price: 3, Amount: 0},
			wantPrice:    3,
			wantNotional: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.balance.Recompute()
			assert.InDelta(t, tt.wantPrice, tt.balance.Price, 1e-9)
			assert.InDelta(t, tt.wantNotional, tt.balance.Notional, 1e-9)
		})
	}
}

func TestBalanceSettersKeepNotionalDerived(t *testing.T) {
	b := Balance{Asset: "ABC", Price: 2, Amount: 10, Notional: 20}

	b.SetPrice(3)
	assert.InDelta(t, 30.0, b.Notional, 1e-9)

	b.SetAmount(7)
	assert.InDelta(t, 21.0, b.Notional, 1e-9)
}

func TestPriceOHLCIsZero(t *testing.T) {
	assert.True(t, PriceOHLC{}.IsZero())
	assert.False(t, PriceOHLC{Close: 0.5}.IsZero())
}

func TestPriceSeriesIsEmpty(t *testing.T) {
	assert.True(t, PriceSeries{Source: SeriesReal}.IsEmpty())
	assert.False(t, PriceSeries{Points: []PricePoint{{Date: "2025-01-01", Price: 1}}}.IsEmpty())
}
