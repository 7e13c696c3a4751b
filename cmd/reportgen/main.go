// Command reportgen renders a liquidity report from a local CSV or XLSX
// export without running the server. The HTML document goes to -out; add
// -pdf to also print a PDF next to it through headless Chrome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"liqreport/internal/exporter"
	"liqreport/internal/services"
	"liqreport/pkg/contracts/domain"
)

func main() {
	input := flag.String("in", "", "input CSV or XLSX file (required)")
	output := flag.String("out", "", "output HTML file (defaults to <in>.html)")
	date := flag.String("date", time.Now().Format("2006-01-02"), "report date, YYYY-MM-DD")
	commentary := flag.String("commentary", "", "commentary text, markdown allowed")
	open := flag.Float64("open", 0, "period open price")
	high := flag.Float64("high", 0, "period high price")
	low := flag.Float64("low", 0, "period low price")
	closePrice := flag.Float64("close", 0, "period close price")
	pdf := flag.Bool("pdf", false, "also print a PDF next to the HTML output")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *output == "" {
		*output = strings.TrimSuffix(*input, filepath.Ext(*input)) + ".html"
	}

	logger := slog.Default()
	ctx := context.Background()

	renderer, err := exporter.NewHTMLRenderer(logger)
	if err != nil {
		slog.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}
	svc := services.NewReportService(nil, nil, renderer, logger)

	data, err := ingestFile(ctx, svc, *input, *date, *commentary)
	if err != nil {
		slog.Error("ingestion failed", "error", err, "file", *input)
		os.Exit(1)
	}
	data.Prices = domain.PriceOHLC{Open: *open, High: *high, Low: *low, Close: *closePrice}

	html, verrs, err := svc.Generate(ctx, data)
	if err != nil {
		slog.Error("report generation failed", "error", err)
		os.Exit(1)
	}
	if len(verrs) > 0 {
		for _, ve := range verrs {
			fmt.Fprintf(os.Stderr, "validation: %s\n", ve.Message)
		}
		os.Exit(1)
	}

	if err := os.WriteFile(*output, html, 0644); err != nil {
		slog.Error("failed to write report", "error", err, "path", *output)
		os.Exit(1)
	}
	slog.Info("report written", "path", *output, "token", data.Token)

	if *pdf {
		printer := exporter.NewPDFPrinter(60*time.Second, logger)
		pdfBytes, err := printer.Print(ctx, html)
		if err != nil {
			slog.Error("pdf print failed", "error", err)
			os.Exit(1)
		}
		pdfPath := strings.TrimSuffix(*output, filepath.Ext(*output)) + ".pdf"
		if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
			slog.Error("failed to write pdf", "error", err, "path", pdfPath)
			os.Exit(1)
		}
		slog.Info("pdf written", "path", pdfPath)
	}
}

func ingestFile(ctx context.Context, svc *services.ReportService, path, date, commentary string) (*domain.ReportData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return svc.FromXLSX(ctx, f, date, commentary)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return svc.FromCSV(ctx, string(raw), date, commentary)
	}
}
