package http

import (
	"context"
	"io"

	"liqreport/internal/validation"
	"liqreport/pkg/contracts/domain"
)

// ReportServiceInterface is the service dependency of the report handler.
type ReportServiceInterface interface {
	FromCSV(ctx context.Context, csvText, date, commentary string) (*domain.ReportData, error)
	FromXLSX(ctx context.Context, r io.Reader, date, commentary string) (*domain.ReportData, error)
	FromSheet(ctx context.Context, url, date string) (*domain.ReportData, error)
	Generate(ctx context.Context, data *domain.ReportData) ([]byte, []validation.ValidationError, error)
}

// Printer converts a rendered HTML document into a PDF. Optional; the
// handler falls back to HTML-only responses when nil.
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
}
