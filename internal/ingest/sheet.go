package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"liqreport/internal/numeric"
	"liqreport/pkg/contracts/domain"
)

// Tab names the report spreadsheet must expose.
const (
	tabLiquidity  = "Liq"
	tabBalances   = "Bal"
	tabCommentary = "Blurb"
)

// ErrInvalidSheetURL is returned when no spreadsheet ID can be extracted from
// the supplied URL.
var ErrInvalidSheetURL = errors.New("invalid Google Sheets URL")

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// ExtractSheetID pulls the spreadsheet identifier out of a sheet URL of shape
// .../d/<id>/...
func ExtractSheetID(url string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", ErrInvalidSheetURL
	}
	return m[1], nil
}

// TabSource fetches the raw cell values of one named spreadsheet tab.
type TabSource interface {
	Values(ctx context.Context, sheetID, tab string) ([][]interface{}, error)
}

type sheetsTabSource struct {
	svc *sheets.Service
}

func (s *sheetsTabSource) Values(ctx context.Context, sheetID, tab string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(sheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// SheetImporter assembles a full ReportData from a three-tab Google Sheet.
// Unlike the CSV and XLSX variants it owns the whole assembly: liquidity
// table, balances, and commentary.
type SheetImporter struct {
	source       TabSource
	logger       *slog.Logger
	fetchTimeout time.Duration
}

// NewSheetImporter builds an importer backed by the Sheets values API using
// key-based access. The key must allow reads on link-shared spreadsheets.
func NewSheetImporter(ctx context.Context, apiKey string, fetchTimeout time.Duration, logger *slog.Logger) (*SheetImporter, error) {
	svc, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSheetImporterWithSource(&sheetsTabSource{svc: svc}, fetchTimeout, logger), nil
}

// NewSheetImporterWithSource builds an importer over any tab source.
func NewSheetImporterWithSource(source TabSource, fetchTimeout time.Duration, logger *slog.Logger) *SheetImporter {
	if logger == nil {
		logger = slog.Default()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &SheetImporter{source: source, logger: logger, fetchTimeout: fetchTimeout}
}

// Import fetches the Liq, Bal, and Blurb tabs and assembles a ReportData.
// The three fetches run concurrently and the import is all-or-nothing: any
// failed tab aborts the whole import with the tab name in the error.
func (i *SheetImporter) Import(ctx context.Context, url, reportDate string) (*domain.ReportData, error) {
	sheetID, err := ExtractSheetID(url)
	if err != nil {
		return nil, err
	}

	i.logger.InfoContext(ctx, "importing spreadsheet",
		slog.String("sheet_id", sheetID),
		slog.String("report_date", reportDate),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, i.fetchTimeout)
	defer cancel()

	var liqRows, balRows, blurbRows [][]interface{}
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() (err error) {
		liqRows, err = i.fetchTab(gctx, sheetID, tabLiquidity)
		return err
	})
	g.Go(func() (err error) {
		balRows, err = i.fetchTab(gctx, sheetID, tabBalances)
		return err
	})
	g.Go(func() (err error) {
		blurbRows, err = i.fetchTab(gctx, sheetID, tabCommentary)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	token, exchanges, err := parseLiquidityTab(liqRows)
	if err != nil {
		return nil, fmt.Errorf("%s tab: %w", tabLiquidity, err)
	}
	balances, warning := parseBalanceTab(balRows, reportDate)

	data := &domain.ReportData{
		Token:          token,
		Date:           reportDate,
		Commentary:     parseCommentaryTab(blurbRows),
		Balances:       balances,
		Exchanges:      exchanges,
		BalanceWarning: warning,
	}

	i.logger.InfoContext(ctx, "spreadsheet imported",
		slog.String("token", token),
		slog.Int("exchanges", len(exchanges)),
		slog.Int("balances", len(balances)),
	)

	return data, nil
}

func (i *SheetImporter) fetchTab(ctx context.Context, sheetID, tab string) ([][]interface{}, error) {
	rows, err := i.source.Values(ctx, sheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("fetch %q tab: %w", tab, err)
	}
	return rows, nil
}

// parseLiquidityTab reads the Liq layout: row 0 cell 0 is the token, row 1 is
// the header row, rows 2+ are exchange records. Rows with an empty Exchange
// cell are skipped.
func parseLiquidityTab(rows [][]interface{}) (string, []domain.ExchangeRecord, error) {
	grid := toStringGrid(rows)
	if len(grid) < 2 {
		return "", nil, ErrMissingHeader
	}

	var token string
	if len(grid[0]) > 0 {
		token = grid[0][0]
	}

	header := grid[1]
	if findHeaderRow([][]string{header}) < 0 {
		return "", nil, ErrMissingHeader
	}

	records := extractRecords(grid[2:], columnMap(header))
	return token, records, nil
}

// parseBalanceTab reads the headerless positional Bal layout: every row is
// data, cell 1 is the asset, cell 2 the amount, cell 3 an optional as-of date.
// Prices are not read from the sheet; stablecoins are pinned to 1.0 here and
// everything else is left at zero for the market-data enrichment step. When
// any as-of date differs from the report date a human-readable staleness
// warning is returned alongside the balances.
func parseBalanceTab(rows [][]interface{}, reportDate string) ([]domain.Balance, string) {
	var balances []domain.Balance
	var warning string

	for _, row := range rows {
		asset := cellString(row, 1)
		if asset == "" {
			continue
		}

		b := domain.Balance{
			Asset:  asset,
			Amount: cellNumber(row, 2),
		}
		b.Recompute()
		balances = append(balances, b)

		if asOf := cellString(row, 3); asOf != "" && asOf != strings.TrimSpace(reportDate) && warning == "" {
			warning = fmt.Sprintf("Balance data is as of %s, which does not match the report date %s", asOf, reportDate)
		}
	}

	if len(balances) == 0 {
		// keep downstream tables renderable on an empty tab
		balances = []domain.Balance{{Asset: "USDT", Price: 1.0}}
	}

	return balances, warning
}

// parseCommentaryTab flattens the Blurb tab: cells joined by a space,
// non-empty rows joined by newlines. No markup interpretation happens here.
func parseCommentaryTab(rows [][]interface{}) string {
	var lines []string
	for _, row := range rows {
		var cells []string
		for i := range row {
			cells = append(cells, cellString(row, i))
		}
		line := strings.TrimSpace(strings.Join(cells, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func toStringGrid(rows [][]interface{}) [][]string {
	grid := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j := range row {
			cells[j] = numeric.CellString(row[j])
		}
		grid[i] = cells
	}
	return grid
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return numeric.CellString(row[idx])
}

func cellNumber(row []interface{}, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	return numeric.ParseCell(row[idx])
}
