package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"liqreport/pkg/contracts/domain"
)

// DefaultLookupBaseURL is the public coin-metadata index the lookup client
// talks to unless configured otherwise.
const DefaultLookupBaseURL = "https://api.coingecko.com/api/v3"

// Client looks up current prices and daily histories for asset tickers from a
// public coin index. Lookups are rate limited and every call carries a bounded
// timeout; a ticker with no match yields price 0 and an empty history rather
// than an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient builds a lookup client. baseURL may be empty to use the default
// public index; timeout bounds each HTTP call.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultLookupBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		// public index free tier allows roughly 30 calls/min
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		logger:  logger,
	}
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// findCoinID resolves an asset ticker to a coin index ID. Empty string means
// no match, which is not an error.
func (c *Client) findCoinID(ctx context.Context, symbol string) (string, error) {
	var resp searchResponse
	endpoint := fmt.Sprintf("%s/search?query=%s", c.baseURL, url.QueryEscape(symbol))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(symbol))
	for _, coin := range resp.Coins {
		if strings.ToLower(coin.Symbol) == want {
			return coin.ID, nil
		}
	}
	return "", nil
}

// CurrentPrice returns the current USD price for an asset ticker, or 0 when
// the index has no matching coin.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	id, err := c.findCoinID(ctx, symbol)
	if err != nil {
		return 0, err
	}
	if id == "" {
		c.logger.InfoContext(ctx, "no coin match for asset", slog.String("symbol", symbol))
		return 0, nil
	}

	var resp map[string]map[string]float64
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, url.QueryEscape(id))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return 0, err
	}
	return resp[id]["usd"], nil
}

// History returns the 30-day daily USD price series for an asset ticker,
// tagged as real market data. A ticker with no match yields an empty series.
func (c *Client) History(ctx context.Context, symbol string) (domain.PriceSeries, error) {
	series := domain.PriceSeries{Source: domain.SeriesReal}

	id, err := c.findCoinID(ctx, symbol)
	if err != nil {
		return series, err
	}
	if id == "" {
		return series, nil
	}

	var resp marketChartResponse
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=30&interval=daily", c.baseURL, url.PathEscape(id))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return series, err
	}

	for _, p := range resp.Prices {
		ts := time.UnixMilli(int64(p[0])).UTC()
		series.Points = append(series.Points, domain.PricePoint{
			Date:  ts.Format("2006-01-02"),
			Price: p[1],
		})
	}
	return series, nil
}

// EnrichBalances fills in prices for balances that have none, in parallel.
// Stablecoins are pinned by Recompute; other assets get a current-price
// lookup. A failed or missing lookup degrades that asset to price 0 without
// failing the batch.
func (c *Client) EnrichBalances(ctx context.Context, balances []domain.Balance) []domain.Balance {
	g, gctx := errgroup.WithContext(ctx)

	for i := range balances {
		b := &balances[i]
		if b.IsStable() || b.Price > 0 {
			b.Recompute()
			continue
		}

		g.Go(func() error {
			price, err := c.CurrentPrice(gctx, b.Asset)
			if err != nil {
				c.logger.WarnContext(gctx, "price lookup failed",
					slog.String("asset", b.Asset),
					slog.String("error", err.Error()),
				)
				price = 0
			}
			b.SetPrice(price)
			return nil
		})
	}

	// workers never return errors; Wait only syncs them
	_ = g.Wait()
	return balances
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("price lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price lookup: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
