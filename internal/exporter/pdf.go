package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// a4WidthInches and a4HeightInches size the printed page.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PDFPrinter prints a rendered HTML report to PDF through headless Chrome.
// It requires a Chrome binary on the host and is therefore optional: callers
// that only need the HTML artifact never construct one.
type PDFPrinter struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewPDFPrinter builds a printer with a bounded per-print timeout.
func NewPDFPrinter(timeout time.Duration, logger *slog.Logger) *PDFPrinter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFPrinter{logger: logger, timeout: timeout}
}

// Print loads the HTML document into a fresh headless browser context and
// prints it with backgrounds enabled.
func (p *PDFPrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(runCtx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	p.logger.Info("report printed", slog.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}
